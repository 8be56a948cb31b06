package booking

import (
	bookingModel "towing-booking/models/booking"
	serviceModel "towing-booking/models/service"
)

// Repository is the persistence contract the lifecycle manager drives. The
// GORM implementation lives in the repository package; tests substitute an
// in-memory fake.
//
// Writes are last-writer-wins; the lifecycle revalidates transitions on the
// freshly loaded row before every status write.
type Repository interface {
	Create(b *bookingModel.Booking) error
	Update(b *bookingModel.Booking) error
	FindByID(id string) (*bookingModel.Booking, error)
	FindByTrackingCode(code string) (*bookingModel.Booking, error)
	FindServiceByID(id uint) (*serviceModel.Service, error)
	RecordStatusEvent(ev *bookingModel.BookingStatusEvent) error
}
