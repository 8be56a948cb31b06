package repository

import (
	"errors"

	"gorm.io/gorm"

	bookingModel "towing-booking/models/booking"
	serviceModel "towing-booking/models/service"
	bookingService "towing-booking/services/booking"
)

// GormBookingRepository persists bookings through GORM. It implements
// services/booking.Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Create inserts a new booking. Requires the connection to be opened with
// TranslateError so a tracking-code collision surfaces as ErrDuplicatedKey.
func (r *GormBookingRepository) Create(b *bookingModel.Booking) error {
	if err := r.db.Create(b).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return bookingService.ErrDuplicateTrackingCode
		}
		return err
	}
	return nil
}

func (r *GormBookingRepository) Update(b *bookingModel.Booking) error {
	return r.db.Omit("Service").Save(b).Error
}

func (r *GormBookingRepository) FindByID(id string) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	err := r.db.Preload("Service").Where("id = ?", id).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bookingService.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) FindByTrackingCode(code string) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	err := r.db.Preload("Service").Where("tracking_code = ?", code).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bookingService.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) FindServiceByID(id uint) (*serviceModel.Service, error) {
	var svc serviceModel.Service
	err := r.db.First(&svc, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bookingService.ErrServiceNotFound
		}
		return nil, err
	}
	return &svc, nil
}

func (r *GormBookingRepository) RecordStatusEvent(ev *bookingModel.BookingStatusEvent) error {
	return r.db.Create(ev).Error
}
