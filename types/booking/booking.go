package booking

import (
	"fmt"

	bookingModel "towing-booking/models/booking"
	"towing-booking/models/service"
)

// CreateBookingRequest is the raw wire payload of the public booking form.
// Field names follow the public API contract (camelCase).
type CreateBookingRequest struct {
	ServiceID     uint   `json:"serviceId" validate:"required"`
	CustomerName  string `json:"customerName" validate:"required,min=1,max=255"`
	CustomerPhone string `json:"customerPhone" validate:"required,phone"`
	PickupLocation string `json:"pickupLocation" validate:"required,min=1"`
	DropLocation   string `json:"dropLocation" validate:"omitempty,min=5"`
	VehicleType    string `json:"vehicleType" validate:"required,min=1,max=255"`
	Notes          string `json:"notes" validate:"omitempty,max=2000"`
	PaymentMethod  string `json:"paymentMethod" validate:"required,oneof=COD ONLINE"`

	PickupLat       *float64 `json:"pickupLat" validate:"omitempty,latitude"`
	PickupLng       *float64 `json:"pickupLng" validate:"omitempty,longitude"`
	DropLocationLat *float64 `json:"dropLocationLat" validate:"omitempty,latitude"`
	DropLocationLng *float64 `json:"dropLocationLng" validate:"omitempty,longitude"`
}

// TransportBooking is the validated request variant for services that move a
// vehicle between two points. Drop-off is mandatory here.
type TransportBooking struct {
	CreateBookingRequest
}

// OnSiteBooking is the validated request variant for services fulfilled at
// the customer's location. Drop-off fields are ignored entirely.
type OnSiteBooking struct {
	CreateBookingRequest
}

// Validate enforces the transport-specific schema on top of the shared tags.
func (t TransportBooking) Validate() error {
	if t.DropLocation == "" {
		return fmt.Errorf("dropLocation is required for transport services")
	}
	// A half-supplied coordinate pair is a client bug, not a degraded route.
	if (t.DropLocationLat == nil) != (t.DropLocationLng == nil) {
		return fmt.Errorf("dropLocationLat and dropLocationLng must be supplied together")
	}
	if (t.PickupLat == nil) != (t.PickupLng == nil) {
		return fmt.Errorf("pickupLat and pickupLng must be supplied together")
	}
	return nil
}

// Validate enforces the on-site schema.
func (o OnSiteBooking) Validate() error {
	if (o.PickupLat == nil) != (o.PickupLng == nil) {
		return fmt.Errorf("pickupLat and pickupLng must be supplied together")
	}
	return nil
}

// ForServiceType narrows the raw payload into the variant matching the
// selected service's kind and runs that variant's validation.
func (r CreateBookingRequest) ForServiceType(st service.ServiceType) (interface{ Validate() error }, error) {
	switch st {
	case service.ServiceTypeTransport:
		v := TransportBooking{r}
		return v, v.Validate()
	case service.ServiceTypeOnSite:
		v := OnSiteBooking{r}
		return v, v.Validate()
	default:
		return nil, fmt.Errorf("unknown service type %q", st)
	}
}

// Method returns the typed payment method.
func (r CreateBookingRequest) Method() bookingModel.PaymentMethod {
	return bookingModel.PaymentMethod(r.PaymentMethod)
}

// UpdateStatusRequest moves a booking to a new lifecycle state.
type UpdateStatusRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
	Status    string `json:"status" validate:"required"`
}

func (r UpdateStatusRequest) Validate() error {
	if r.BookingID == "" {
		return fmt.Errorf("booking_id is required")
	}
	if !bookingModel.BookingStatus(r.Status).IsValid() {
		return fmt.Errorf("unknown booking status %q", r.Status)
	}
	return nil
}

// UpdateDriverLocationRequest reports the driver's live position.
type UpdateDriverLocationRequest struct {
	BookingID string  `json:"booking_id" validate:"required"`
	Lat       float64 `json:"lat" validate:"required,latitude"`
	Lng       float64 `json:"lng" validate:"required,longitude"`
}

// CreateBookingResponse is the persisted booking plus, when the online flow
// obtained one, the gateway charge token for client-side completion.
type CreateBookingResponse struct {
	*bookingModel.Booking
	MidtransToken string `json:"midtransToken,omitempty"`
}

// ActionResponse is the success/error envelope of action-style staff calls.
type ActionResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// TrackingResponse is the customer-facing view of a booking. It deliberately
// omits the internal id; the tracking code is the only identifier exposed.
type TrackingResponse struct {
	TrackingCode   string                     `json:"tracking_code"`
	ServiceTitle   string                     `json:"service_title"`
	CustomerName   string                     `json:"customer_name"`
	PickupLocation string                     `json:"pickup_location"`
	DropLocation   *string                    `json:"drop_location,omitempty"`
	VehicleType    string                     `json:"vehicle_type"`
	PaymentMethod  bookingModel.PaymentMethod `json:"payment_method"`
	PaymentStatus  bookingModel.PaymentStatus `json:"payment_status"`
	TotalAmount    int64                      `json:"total_amount"`
	Distance       *float64                   `json:"distance,omitempty"`
	Status         bookingModel.BookingStatus `json:"status"`
	DriverLat      *float64                   `json:"driver_lat,omitempty"`
	DriverLng      *float64                   `json:"driver_lng,omitempty"`
	CreatedAt      string                     `json:"created_at"`
	UpdatedAt      string                     `json:"updated_at"`
}
