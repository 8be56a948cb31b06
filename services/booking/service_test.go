package booking_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	midtransService "towing-booking/httpServices/midtrans"
	bookingModel "towing-booking/models/booking"
	serviceModel "towing-booking/models/service"
	bookingService "towing-booking/services/booking"
	"towing-booking/services/pricing"
	bookingTypes "towing-booking/types/booking"
)

// fakeRepo is an in-memory Repository with the same uniqueness behavior as
// the database-backed one.
type fakeRepo struct {
	bookings map[string]*bookingModel.Booking
	codes    map[string]bool
	services map[uint]*serviceModel.Service
	events   []*bookingModel.BookingStatusEvent

	failCreates int // force this many duplicate-code errors first
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		bookings: make(map[string]*bookingModel.Booking),
		codes:    make(map[string]bool),
		services: make(map[uint]*serviceModel.Service),
	}
}

func (r *fakeRepo) Create(b *bookingModel.Booking) error {
	if r.failCreates > 0 {
		r.failCreates--
		return bookingService.ErrDuplicateTrackingCode
	}
	if r.codes[b.TrackingCode] {
		return bookingService.ErrDuplicateTrackingCode
	}
	copied := *b
	r.bookings[b.ID] = &copied
	r.codes[b.TrackingCode] = true
	return nil
}

func (r *fakeRepo) Update(b *bookingModel.Booking) error {
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *fakeRepo) FindByID(id string) (*bookingModel.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingService.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) FindByTrackingCode(code string) (*bookingModel.Booking, error) {
	for _, b := range r.bookings {
		if b.TrackingCode == code {
			copied := *b
			return &copied, nil
		}
	}
	return nil, bookingService.ErrBookingNotFound
}

func (r *fakeRepo) FindServiceByID(id uint) (*serviceModel.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, bookingService.ErrServiceNotFound
	}
	return svc, nil
}

func (r *fakeRepo) RecordStatusEvent(ev *bookingModel.BookingStatusEvent) error {
	r.events = append(r.events, ev)
	return nil
}

type fakeGateway struct {
	token   string
	err     error
	lastReq midtransService.SnapTransactionRequest
	calls   int
}

func (g *fakeGateway) CreateTransaction(req midtransService.SnapTransactionRequest) (string, error) {
	g.calls++
	g.lastReq = req
	return g.token, g.err
}

type fixedRouter struct {
	distance float64
	err      error
}

func (f fixedRouter) DrivingDistanceKm(fromLat, fromLng, toLat, toLng float64) (float64, error) {
	return f.distance, f.err
}

func ptr(v float64) *float64 { return &v }

func newLifecycle(repo *fakeRepo, router pricing.Router, gateway *fakeGateway) *bookingService.Service {
	return bookingService.New(repo, pricing.NewCalculator(router), gateway)
}

func seedServices(repo *fakeRepo) {
	repo.services[1] = &serviceModel.Service{
		ID:         1,
		Title:      "Derek Mobil Standar",
		Slug:       "derek-mobil-standar",
		Price:      250000,
		PricePerKm: 10000,
		Type:       serviceModel.ServiceTypeTransport,
		IsActive:   true,
	}
	repo.services[2] = &serviceModel.Service{
		ID:       2,
		Title:    "Jumper Aki",
		Slug:     "jumper-aki",
		Price:    150000,
		Type:     serviceModel.ServiceTypeOnSite,
		IsActive: true,
	}
}

func onSiteRequest() bookingTypes.CreateBookingRequest {
	return bookingTypes.CreateBookingRequest{
		ServiceID:      2,
		CustomerName:   "Budi Santoso",
		CustomerPhone:  "081234567890",
		PickupLocation: "Jl. Sudirman No. 1, Jakarta",
		VehicleType:    "Toyota Avanza",
		PaymentMethod:  "COD",
	}
}

func transportRequest() bookingTypes.CreateBookingRequest {
	return bookingTypes.CreateBookingRequest{
		ServiceID:       1,
		CustomerName:    "Siti Rahma",
		CustomerPhone:   "081298765432",
		PickupLocation:  "Jl. Gatot Subroto No. 10, Jakarta",
		DropLocation:    "Bengkel Maju Jaya, Jl. Fatmawati No. 5",
		VehicleType:     "Honda Jazz",
		PaymentMethod:   "COD",
		PickupLat:       ptr(-6.2088),
		PickupLng:       ptr(106.8456),
		DropLocationLat: ptr(-6.2921),
		DropLocationLng: ptr(106.7975),
	}
}

var trackingCodePattern = regexp.MustCompile(`^TRK-[A-Z0-9]{6}$`)

func TestCreateOnSiteBooking(t *testing.T) {
	repo := newFakeRepo()
	seedServices(repo)
	gateway := &fakeGateway{}
	lc := newLifecycle(repo, fixedRouter{distance: 5}, gateway)

	b, token, err := lc.Create(onSiteRequest(), "customer")
	require.NoError(t, err)

	assert.Regexp(t, trackingCodePattern, b.TrackingCode)
	assert.Equal(t, bookingModel.BookingStatusPending, b.Status)
	assert.Equal(t, bookingModel.PaymentStatusUnpaid, b.PaymentStatus)
	// On-site services are flat-rate: no route, no distance.
	assert.Equal(t, int64(150000), b.TotalAmount)
	assert.Nil(t, b.Distance)
	assert.Nil(t, b.DropLocation)
	assert.Empty(t, token)
	assert.Equal(t, 0, gateway.calls)

	// Creation is recorded in the audit trail.
	require.Len(t, repo.events, 1)
	assert.Equal(t, bookingModel.BookingStatusPending, repo.events[0].Status)
	assert.Equal(t, "customer", repo.events[0].CreatedBy)
}

func TestCreateTransportBookingRoutedPrice(t *testing.T) {
	repo := newFakeRepo()
	seedServices(repo)
	lc := newLifecycle(repo, fixedRouter{distance: 5}, &fakeGateway{})

	b, _, err := lc.Create(transportRequest(), "customer")
	require.NoError(t, err)

	// 250000 base + 5km * 10000 = 300000
	assert.Equal(t, int64(300000), b.TotalAmount)
	require.NotNil(t, b.Distance)
	assert.Equal(t, 5.0, *b.Distance)
	require.NotNil(t, b.DropLocation)
	assert.Equal(t, "Bengkel Maju Jaya, Jl. Fatmawati No. 5", *b.DropLocation)
}

func TestCreateTransportBookingRoutingOutage(t *testing.T) {
	repo := newFakeRepo()
	seedServices(repo)
	lc := newLifecycle(repo, fixedRouter{err: errors.New("gateway timeout")}, &fakeGateway{})

	b, _, err := lc.Create(transportRequest(), "customer")
	require.NoError(t, err)

	// Routing outage degrades to the flat base price, never fails the booking.
	assert.Equal(t, int64(250000), b.TotalAmount)
	assert.Nil(t, b.Distance)
}

func TestCreateTransportWithoutDropLocation(t *testing.T) {
	repo := newFakeRepo()
	seedServices(repo)
	lc := newLifecycle(repo, fixedRouter{}, &fakeGateway{})

	req := transportRequest()
	req.DropLocation = ""

	_, _, err := lc.Create(req, "customer")
	assert.ErrorContains(t, err, "dropLocation is required")
	assert.Empty(t, repo.bookings)
}

func TestCreateUnknownService(t *testing.T) {
	repo := newFakeRepo()
	seedServices(repo)
	lc := newLifecycle(repo, fixedRouter{}, &fakeGateway{})

	req := onSiteRequest()
	req.ServiceID = 99

	_, _, err := lc.Create(req, "customer")
	assert.ErrorIs(t, err, bookingService.ErrServiceNotFound)
}

func TestCreateOnlineBookingRequestsToken(t *testing.T) {
	repo := newFakeRepo()
	seedServices(repo)
	gateway := &fakeGateway{token: "snap-token-123"}
	lc := newLifecycle(repo, fixedRouter{distance: 5}, gateway)

	req := transportRequest()
	req.PaymentMethod = "ONLINE"

	b, token, err := lc.Create(req, "customer")
	require.NoError(t, err)

	assert.Equal(t, "snap-token-123", token)
	assert.Equal(t, bookingModel.PaymentStatusPending, b.PaymentStatus)
	// The gateway order references the booking id and the priced amount.
	assert.Equal(t, b.ID, gateway.lastReq.TransactionDetails.OrderID)
	assert.Equal(t, b.TotalAmount, gateway.lastReq.TransactionDetails.GrossAmount)
}

func TestCreateOnlineBookingSurvivesGatewayOutage(t *testing.T) {
	repo := newFakeRepo()
	seedServices(repo)
	gateway := &fakeGateway{err: errors.New("midtrans 503")}
	lc := newLifecycle(repo, fixedRouter{distance: 5}, gateway)

	req := transportRequest()
	req.PaymentMethod = "ONLINE"

	b, token, err := lc.Create(req, "customer")
	require.NoError(t, err)

	// The booking stands without a token; the customer can pay on delivery.
	assert.Empty(t, token)
	assert.NotEmpty(t, b.ID)
	assert.Contains(t, repo.bookings, b.ID)
}

func TestCreateRetriesOnTrackingCodeCollision(t *testing.T) {
	repo := newFakeRepo()
	seedServices(repo)
	repo.failCreates = 2
	lc := newLifecycle(repo, fixedRouter{distance: 5}, &fakeGateway{})

	b, _, err := lc.Create(onSiteRequest(), "customer")
	require.NoError(t, err)
	assert.Regexp(t, trackingCodePattern, b.TrackingCode)
}

func TestCreateGivesUpAfterRepeatedCollisions(t *testing.T) {
	repo := newFakeRepo()
	seedServices(repo)
	repo.failCreates = 10
	lc := newLifecycle(repo, fixedRouter{}, &fakeGateway{})

	_, _, err := lc.Create(onSiteRequest(), "customer")
	assert.ErrorIs(t, err, bookingService.ErrTrackingCodeExhausted)
}

func TestUpdateStatusOrderedLifecycle(t *testing.T) {
	repo := newFakeRepo()
	seedServices(repo)
	lc := newLifecycle(repo, fixedRouter{}, &fakeGateway{})

	b, _, err := lc.Create(onSiteRequest(), "customer")
	require.NoError(t, err)

	t.Run("forward transitions", func(t *testing.T) {
		for _, target := range []bookingModel.BookingStatus{
			bookingModel.BookingStatusConfirmed,
			bookingModel.BookingStatusInProgress,
			bookingModel.BookingStatusCompleted,
		} {
			updated, err := lc.UpdateStatus(b.ID, target, "admin")
			require.NoError(t, err)
			assert.Equal(t, target, updated.Status)
		}
	})

	t.Run("terminal booking rejects everything", func(t *testing.T) {
		_, err := lc.UpdateStatus(b.ID, bookingModel.BookingStatusCancelled, "admin")
		assert.ErrorIs(t, err, bookingService.ErrTerminalStatus)
	})

	t.Run("audit trail covers each step", func(t *testing.T) {
		// creation + three transitions
		assert.Len(t, repo.events, 4)
	})
}

func TestUpdateStatusRejectsSkippedSteps(t *testing.T) {
	repo := newFakeRepo()
	seedServices(repo)
	lc := newLifecycle(repo, fixedRouter{}, &fakeGateway{})

	b, _, err := lc.Create(onSiteRequest(), "customer")
	require.NoError(t, err)

	_, err = lc.UpdateStatus(b.ID, bookingModel.BookingStatusCompleted, "admin")
	assert.ErrorIs(t, err, bookingService.ErrInvalidTransition)

	_, err = lc.UpdateStatus(b.ID, bookingModel.BookingStatusInProgress, "admin")
	assert.ErrorIs(t, err, bookingService.ErrInvalidTransition)
}

func TestUpdateStatusSameStatusIsNoOp(t *testing.T) {
	repo := newFakeRepo()
	seedServices(repo)
	lc := newLifecycle(repo, fixedRouter{}, &fakeGateway{})

	b, _, err := lc.Create(onSiteRequest(), "customer")
	require.NoError(t, err)

	updated, err := lc.UpdateStatus(b.ID, bookingModel.BookingStatusPending, "admin")
	require.NoError(t, err)
	assert.Equal(t, bookingModel.BookingStatusPending, updated.Status)
	// No extra audit row for a no-op.
	assert.Len(t, repo.events, 1)
}

func TestUpdateDriverLocation(t *testing.T) {
	repo := newFakeRepo()
	seedServices(repo)
	lc := newLifecycle(repo, fixedRouter{}, &fakeGateway{})

	b, _, err := lc.Create(onSiteRequest(), "customer")
	require.NoError(t, err)

	require.NoError(t, lc.UpdateDriverLocation(b.ID, -6.21, 106.85))

	stored, err := lc.TrackByCode(b.TrackingCode)
	require.NoError(t, err)
	require.NotNil(t, stored.DriverLat)
	assert.Equal(t, -6.21, *stored.DriverLat)
	assert.Equal(t, 106.85, *stored.DriverLng)

	// Still PENDING, so the public view hides the position.
	assert.False(t, stored.DriverPositionVisible())

	_, err = lc.UpdateStatus(b.ID, bookingModel.BookingStatusConfirmed, "admin")
	require.NoError(t, err)
	stored, err = lc.TrackByCode(b.TrackingCode)
	require.NoError(t, err)
	assert.True(t, stored.DriverPositionVisible())
}

func TestTrackByCodeUnknown(t *testing.T) {
	repo := newFakeRepo()
	lc := newLifecycle(repo, fixedRouter{}, &fakeGateway{})

	_, err := lc.TrackByCode("TRK-ZZZZZZ")
	assert.ErrorIs(t, err, bookingService.ErrBookingNotFound)
}
