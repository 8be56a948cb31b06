package payment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	midtransService "towing-booking/httpServices/midtrans"
	bookingModel "towing-booking/models/booking"
	serviceModel "towing-booking/models/service"
	bookingService "towing-booking/services/booking"
	paymentService "towing-booking/services/payment"
	"towing-booking/services/pricing"
	bookingTypes "towing-booking/types/booking"
	paymentTypes "towing-booking/types/payment"
)

// memoryRepo is the minimal in-memory Repository the reconciliation tests
// drive the real lifecycle against.
type memoryRepo struct {
	bookings map[string]*bookingModel.Booking
	services map[uint]*serviceModel.Service
	events   []*bookingModel.BookingStatusEvent
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		bookings: make(map[string]*bookingModel.Booking),
		services: map[uint]*serviceModel.Service{
			1: {ID: 1, Title: "Derek Mobil Standar", Price: 250000, PricePerKm: 10000, Type: serviceModel.ServiceTypeTransport},
		},
	}
}

func (r *memoryRepo) Create(b *bookingModel.Booking) error {
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *memoryRepo) Update(b *bookingModel.Booking) error {
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *memoryRepo) FindByID(id string) (*bookingModel.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingService.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *memoryRepo) FindByTrackingCode(code string) (*bookingModel.Booking, error) {
	for _, b := range r.bookings {
		if b.TrackingCode == code {
			copied := *b
			return &copied, nil
		}
	}
	return nil, bookingService.ErrBookingNotFound
}

func (r *memoryRepo) FindServiceByID(id uint) (*serviceModel.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, bookingService.ErrServiceNotFound
	}
	return svc, nil
}

func (r *memoryRepo) RecordStatusEvent(ev *bookingModel.BookingStatusEvent) error {
	r.events = append(r.events, ev)
	return nil
}

type noRouter struct{}

func (noRouter) DrivingDistanceKm(fromLat, fromLng, toLat, toLng float64) (float64, error) {
	return 0, nil
}

type silentGateway struct{}

func (silentGateway) CreateTransaction(req midtransService.SnapTransactionRequest) (string, error) {
	return "snap-token", nil
}

type stubVerifier struct {
	err error
}

func (v stubVerifier) VerifySignature(orderID, statusCode, grossAmount, signatureKey string) error {
	return v.err
}

func setupReconciler(t *testing.T, verifier paymentService.Verifier) (*paymentService.Reconciler, *bookingService.Service, *bookingModel.Booking) {
	t.Helper()

	repo := newMemoryRepo()
	lifecycle := bookingService.New(repo, pricing.NewCalculator(noRouter{}), silentGateway{})

	b, _, err := lifecycle.Create(bookingTypes.CreateBookingRequest{
		ServiceID:      1,
		CustomerName:   "Budi Santoso",
		CustomerPhone:  "081234567890",
		PickupLocation: "Jl. Sudirman No. 1",
		DropLocation:   "Bengkel Maju Jaya, Jl. Fatmawati",
		VehicleType:    "Toyota Avanza",
		PaymentMethod:  "ONLINE",
	}, "customer")
	require.NoError(t, err)

	return paymentService.NewReconciler(lifecycle, verifier), lifecycle, b
}

func notification(orderID, transactionStatus, fraudStatus string) paymentTypes.Notification {
	return paymentTypes.Notification{
		OrderID:           orderID,
		TransactionStatus: transactionStatus,
		FraudStatus:       fraudStatus,
		StatusCode:        "200",
		GrossAmount:       "300000.00",
		SignatureKey:      "irrelevant-for-stub",
	}
}

func TestMapStatuses(t *testing.T) {
	cases := []struct {
		transaction string
		fraud       string
		booking     bookingModel.BookingStatus
		payment     bookingModel.PaymentStatus
		ok          bool
	}{
		{"capture", "challenge", bookingModel.BookingStatusPending, bookingModel.PaymentStatusPending, true},
		{"capture", "accept", bookingModel.BookingStatusConfirmed, bookingModel.PaymentStatusPaid, true},
		{"capture", "", "", "", false},
		{"settlement", "", bookingModel.BookingStatusConfirmed, bookingModel.PaymentStatusPaid, true},
		{"pending", "", bookingModel.BookingStatusPending, bookingModel.PaymentStatusPending, true},
		{"cancel", "", bookingModel.BookingStatusCancelled, bookingModel.PaymentStatusFailed, true},
		{"deny", "", bookingModel.BookingStatusCancelled, bookingModel.PaymentStatusFailed, true},
		{"expire", "", bookingModel.BookingStatusCancelled, bookingModel.PaymentStatusFailed, true},
		{"refund", "", "", "", false},
		{"", "", "", "", false},
	}

	for _, tc := range cases {
		booking, payment, ok := paymentService.MapStatuses(tc.transaction, tc.fraud)
		assert.Equal(t, tc.ok, ok, "transaction_status=%q fraud_status=%q", tc.transaction, tc.fraud)
		if tc.ok {
			assert.Equal(t, tc.booking, booking)
			assert.Equal(t, tc.payment, payment)
		}
	}
}

func TestApplySettlementConfirmsBooking(t *testing.T) {
	reconciler, lifecycle, b := setupReconciler(t, stubVerifier{})

	result, err := reconciler.Apply(notification(b.ID, "settlement", ""))
	require.NoError(t, err)

	assert.True(t, result.Applied)
	assert.Equal(t, bookingModel.BookingStatusConfirmed, result.BookingStatus)
	assert.Equal(t, bookingModel.PaymentStatusPaid, result.PaymentStatus)

	stored, err := lifecycle.TrackByCode(b.TrackingCode)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.BookingStatusConfirmed, stored.Status)
	assert.Equal(t, bookingModel.PaymentStatusPaid, stored.PaymentStatus)
}

func TestApplyReplayedSettlementIsHarmless(t *testing.T) {
	reconciler, lifecycle, b := setupReconciler(t, stubVerifier{})

	_, err := reconciler.Apply(notification(b.ID, "settlement", ""))
	require.NoError(t, err)

	// Gateways redeliver; the second pass must land on the same state
	// without an error.
	result, err := reconciler.Apply(notification(b.ID, "settlement", ""))
	require.NoError(t, err)
	assert.True(t, result.Applied)

	stored, err := lifecycle.TrackByCode(b.TrackingCode)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.BookingStatusConfirmed, stored.Status)
}

func TestApplyExpireCancelsBooking(t *testing.T) {
	reconciler, lifecycle, b := setupReconciler(t, stubVerifier{})

	result, err := reconciler.Apply(notification(b.ID, "expire", ""))
	require.NoError(t, err)
	assert.True(t, result.Applied)

	stored, err := lifecycle.TrackByCode(b.TrackingCode)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.BookingStatusCancelled, stored.Status)
	assert.Equal(t, bookingModel.PaymentStatusFailed, stored.PaymentStatus)

	// Cancelled is terminal; staff can no longer push the job forward.
	_, err = lifecycle.UpdateStatus(b.ID, bookingModel.BookingStatusInProgress, "admin")
	assert.ErrorIs(t, err, bookingService.ErrTerminalStatus)
}

func TestApplyLateNotificationAfterStaffAdvanced(t *testing.T) {
	reconciler, lifecycle, b := setupReconciler(t, stubVerifier{})

	_, err := lifecycle.UpdateStatus(b.ID, bookingModel.BookingStatusConfirmed, "admin")
	require.NoError(t, err)
	_, err = lifecycle.UpdateStatus(b.ID, bookingModel.BookingStatusInProgress, "admin")
	require.NoError(t, err)

	// A stale "pending" arriving after dispatch must be acknowledged, not
	// allowed to drag the booking backwards.
	result, err := reconciler.Apply(notification(b.ID, "pending", ""))
	require.NoError(t, err)
	assert.False(t, result.Applied)

	stored, err := lifecycle.TrackByCode(b.TrackingCode)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.BookingStatusInProgress, stored.Status)
}

func TestApplyUnrecognizedStatusIsAcknowledged(t *testing.T) {
	reconciler, lifecycle, b := setupReconciler(t, stubVerifier{})

	result, err := reconciler.Apply(notification(b.ID, "refund", ""))
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, "unrecognized transaction status", result.Reason)

	stored, err := lifecycle.TrackByCode(b.TrackingCode)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.BookingStatusPending, stored.Status)
}

func TestApplyRejectsBadSignature(t *testing.T) {
	reconciler, lifecycle, b := setupReconciler(t, stubVerifier{err: midtransService.ErrInvalidSignature})

	_, err := reconciler.Apply(notification(b.ID, "settlement", ""))
	assert.ErrorIs(t, err, midtransService.ErrInvalidSignature)

	// The forged notification changed nothing.
	stored, err := lifecycle.TrackByCode(b.TrackingCode)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.BookingStatusPending, stored.Status)
}

func TestApplyUnknownOrder(t *testing.T) {
	reconciler, _, _ := setupReconciler(t, stubVerifier{})

	_, err := reconciler.Apply(notification("no-such-order", "settlement", ""))
	assert.ErrorIs(t, err, bookingService.ErrBookingNotFound)
}
