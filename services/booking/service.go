package booking

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	midtransService "towing-booking/httpServices/midtrans"
	"towing-booking/logger"
	bookingModel "towing-booking/models/booking"
	"towing-booking/services/pricing"
	bookingTypes "towing-booking/types/booking"
)

const trackingCodeAttempts = 5

// PaymentGateway is the outbound charge dependency. Satisfied by
// httpServices/midtrans; tests substitute a fake.
type PaymentGateway interface {
	CreateTransaction(req midtransService.SnapTransactionRequest) (string, error)
}

// Service drives the booking lifecycle: creation with pricing and optional
// charge initiation, ordered status transitions, driver-position updates,
// and the public tracking lookup.
type Service struct {
	repo    Repository
	calc    *pricing.Calculator
	gateway PaymentGateway
}

func New(repo Repository, calc *pricing.Calculator, gateway PaymentGateway) *Service {
	return &Service{
		repo:    repo,
		calc:    calc,
		gateway: gateway,
	}
}

// Create validates the request against the selected service's kind, persists
// the booking as PENDING, prices it, and (for online payment) asks the
// gateway for a charge token.
//
// Pricing and charge initiation both degrade instead of failing the booking:
// a routing outage means flat-rate pricing, a gateway outage means the
// booking exists without a token and the customer falls back to cash.
func (s *Service) Create(req bookingTypes.CreateBookingRequest, actor string) (*bookingModel.Booking, string, error) {
	svc, err := s.repo.FindServiceByID(req.ServiceID)
	if err != nil {
		return nil, "", err
	}

	if _, err := req.ForServiceType(svc.Type); err != nil {
		return nil, "", err
	}

	method := req.Method()
	if !method.IsValid() {
		return nil, "", fmt.Errorf("unknown payment method %q", req.PaymentMethod)
	}

	paymentStatus := bookingModel.PaymentStatusUnpaid
	if method == bookingModel.PaymentMethodOnline {
		paymentStatus = bookingModel.PaymentStatusPending
	}

	b := &bookingModel.Booking{
		ID:             uuid.NewString(),
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		PickupLocation: req.PickupLocation,
		PickupLat:      req.PickupLat,
		PickupLng:      req.PickupLng,
		VehicleType:    req.VehicleType,
		ServiceID:      svc.ID,
		PaymentMethod:  method,
		PaymentStatus:  paymentStatus,
		TotalAmount:    0,
		Status:         bookingModel.BookingStatusPending,
		CreatedAt:      time.Now(),
	}
	if req.Notes != "" {
		b.Notes = &req.Notes
	}
	if svc.Type.RequiresDropOff() {
		drop := req.DropLocation
		b.DropLocation = &drop
		b.DropLocationLat = req.DropLocationLat
		b.DropLocationLng = req.DropLocationLng
	}

	if err := s.persistWithFreshCode(b); err != nil {
		return nil, "", err
	}

	quote := s.priceBooking(b, svc.Price, svc.PricePerKm)
	b.TotalAmount = quote.Total
	b.Distance = quote.Distance
	if err := s.repo.Update(b); err != nil {
		return nil, "", err
	}

	if err := s.repo.RecordStatusEvent(&bookingModel.BookingStatusEvent{
		BookingID: b.ID,
		Status:    b.Status,
		CreatedBy: actor,
	}); err != nil {
		logger.Error("Failed to record booking creation event", err)
	}

	b.Service = *svc

	if method != bookingModel.PaymentMethodOnline {
		return b, "", nil
	}

	token := s.requestChargeToken(b, svc.Title)
	return b, token, nil
}

func (s *Service) persistWithFreshCode(b *bookingModel.Booking) error {
	for attempt := 0; attempt < trackingCodeAttempts; attempt++ {
		code, err := GenerateTrackingCode()
		if err != nil {
			return err
		}
		b.TrackingCode = code

		err = s.repo.Create(b)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrDuplicateTrackingCode) {
			return err
		}
		logger.Warning(fmt.Sprintf("Tracking code collision on %s, regenerating", code))
	}
	return ErrTrackingCodeExhausted
}

func (s *Service) priceBooking(b *bookingModel.Booking, basePrice, perKm int64) pricing.Quote {
	var origin, destination *pricing.Coordinate
	if b.PickupLat != nil && b.PickupLng != nil {
		origin = &pricing.Coordinate{Lat: *b.PickupLat, Lng: *b.PickupLng}
	}
	if b.DropLocationLat != nil && b.DropLocationLng != nil {
		destination = &pricing.Coordinate{Lat: *b.DropLocationLat, Lng: *b.DropLocationLng}
	}
	return s.calc.Quote(basePrice, perKm, origin, destination)
}

func (s *Service) requestChargeToken(b *bookingModel.Booking, serviceTitle string) string {
	finishURL := os.Getenv("BASE_URL")
	var callbacks *midtransService.Callbacks
	if finishURL != "" {
		callbacks = &midtransService.Callbacks{
			Finish: finishURL + "/track?code=" + b.TrackingCode,
		}
	}

	token, err := s.gateway.CreateTransaction(midtransService.SnapTransactionRequest{
		TransactionDetails: midtransService.TransactionDetails{
			OrderID:     b.ID,
			GrossAmount: b.TotalAmount,
		},
		CustomerDetails: midtransService.CustomerDetails{
			FirstName: b.CustomerName,
			Phone:     b.CustomerPhone,
		},
		ItemDetails: []midtransService.ItemDetail{{
			ID:       fmt.Sprintf("%d", b.ServiceID),
			Price:    b.TotalAmount,
			Quantity: 1,
			Name:     serviceTitle,
		}},
		Callbacks: callbacks,
	})
	if err != nil {
		// The booking stands either way; without a token the customer
		// simply pays on delivery.
		logger.Error("Failed to create Midtrans transaction", err)
		return ""
	}
	return token
}

// UpdateStatus moves a booking to target. Terminal bookings reject every
// transition and regressions are refused. A same-status update is a no-op,
// which keeps replayed gateway notifications harmless.
func (s *Service) UpdateStatus(bookingID string, target bookingModel.BookingStatus, actor string) (*bookingModel.Booking, error) {
	if !target.IsValid() {
		return nil, fmt.Errorf("unknown booking status %q", target)
	}

	b, err := s.repo.FindByID(bookingID)
	if err != nil {
		return nil, err
	}

	if b.Status == target {
		return b, nil
	}
	if b.Status.IsTerminal() {
		return nil, ErrTerminalStatus
	}
	if !b.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, target)
	}

	b.Status = target
	b.UpdatedAt = time.Now()
	if err := s.repo.Update(b); err != nil {
		return nil, err
	}

	if err := s.repo.RecordStatusEvent(&bookingModel.BookingStatusEvent{
		BookingID: b.ID,
		Status:    target,
		CreatedBy: actor,
	}); err != nil {
		logger.Error("Failed to record status event", err)
	}

	logger.Success(fmt.Sprintf("Booking %s moved to %s by %s", b.TrackingCode, target, actor))
	return b, nil
}

// SetPaymentStatus records what the gateway reported for the booking's
// payment, independent of the operational status.
func (s *Service) SetPaymentStatus(bookingID string, status bookingModel.PaymentStatus) error {
	b, err := s.repo.FindByID(bookingID)
	if err != nil {
		return err
	}
	if b.PaymentStatus == status {
		return nil
	}
	b.PaymentStatus = status
	b.UpdatedAt = time.Now()
	return s.repo.Update(b)
}

// UpdateDriverLocation persists the driver's live position. Writes are not
// gated on status since dispatch may pre-position a driver before
// confirmation, but the tracking view only exposes the position while the
// booking is actively en route.
func (s *Service) UpdateDriverLocation(bookingID string, lat, lng float64) error {
	b, err := s.repo.FindByID(bookingID)
	if err != nil {
		return err
	}
	b.DriverLat = &lat
	b.DriverLng = &lng
	b.UpdatedAt = time.Now()
	return s.repo.Update(b)
}

// TrackByCode is the public read path: lookup by tracking code only, with the
// service relation loaded for its display title.
func (s *Service) TrackByCode(code string) (*bookingModel.Booking, error) {
	return s.repo.FindByTrackingCode(code)
}
