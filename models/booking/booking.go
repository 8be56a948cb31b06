package booking

import (
	"time"

	"towing-booking/models/service"
)

// Booking represents a towing/rescue order. The ID doubles as the payment
// gateway order reference; TrackingCode is the only identifier customers see.
type Booking struct {
	ID           string `gorm:"type:varchar(36);primaryKey" json:"id"`
	TrackingCode string `gorm:"type:varchar(20);not null;unique" json:"tracking_code"`

	CustomerName  string `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone string `gorm:"type:varchar(20);not null" json:"customer_phone"`

	PickupLocation string   `gorm:"type:text;not null" json:"pickup_location"`
	PickupLat      *float64 `gorm:"" json:"pickup_lat,omitempty"`
	PickupLng      *float64 `gorm:"" json:"pickup_lng,omitempty"`

	// Drop-off is absent for on-site services (battery jump, tire change).
	DropLocation    *string  `gorm:"type:text" json:"drop_location,omitempty"`
	DropLocationLat *float64 `gorm:"" json:"drop_location_lat,omitempty"`
	DropLocationLng *float64 `gorm:"" json:"drop_location_lng,omitempty"`

	VehicleType string  `gorm:"type:varchar(255);not null" json:"vehicle_type"`
	Notes       *string `gorm:"type:text" json:"notes,omitempty"`

	// Foreign key for service relationship
	ServiceID uint            `gorm:"not null" json:"service_id"`
	Service   service.Service `gorm:"foreignKey:ServiceID" json:"service"`

	PaymentMethod PaymentMethod `gorm:"type:varchar(10);not null" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(10);not null;default:UNPAID" json:"payment_status"`

	// TotalAmount holds the flat base price until routed pricing lands;
	// Distance stays nil when no route was priced.
	TotalAmount int64    `gorm:"not null;default:0" json:"total_amount"`
	Distance    *float64 `gorm:"" json:"distance,omitempty"`

	Status BookingStatus `gorm:"type:varchar(20);not null;default:PENDING" json:"status"`

	DriverLat *float64 `gorm:"" json:"driver_lat,omitempty"`
	DriverLng *float64 `gorm:"" json:"driver_lng,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// HasRouteCoordinates reports whether both coordinate pairs were supplied,
// i.e. whether routed pricing is possible for this booking.
func (b *Booking) HasRouteCoordinates() bool {
	return b.PickupLat != nil && b.PickupLng != nil &&
		b.DropLocationLat != nil && b.DropLocationLng != nil
}

// DriverPositionVisible reports whether the live driver position may be
// shown to the customer. The position is only trustworthy while the booking
// is actively en route; stale coordinates outside that window are hidden,
// not deleted.
func (b *Booking) DriverPositionVisible() bool {
	return (b.Status == BookingStatusConfirmed || b.Status == BookingStatusInProgress) &&
		b.DriverLat != nil && b.DriverLng != nil
}
