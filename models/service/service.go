package service

import (
	"time"
)

// ServiceType distinguishes services that move a vehicle between two points
// from services fulfilled entirely at the customer's location.
type ServiceType string

const (
	ServiceTypeTransport ServiceType = "TRANSPORT"
	ServiceTypeOnSite    ServiceType = "ON_SITE"
)

func (st ServiceType) String() string {
	return string(st)
}

func (st ServiceType) IsValid() bool {
	return st == ServiceTypeTransport || st == ServiceTypeOnSite
}

// RequiresDropOff reports whether bookings for this service type need a
// drop-off location.
func (st ServiceType) RequiresDropOff() bool {
	return st == ServiceTypeTransport
}

// Service is the commercial catalog entry a booking references. The booking
// engine only reads these rows; catalog management lives elsewhere.
type Service struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string  `gorm:"type:varchar(255);not null" json:"title"`
	Slug        string  `gorm:"type:varchar(255);not null;unique" json:"slug"`
	Description string  `gorm:"type:text" json:"description"`
	Image       *string `gorm:"type:text" json:"image,omitempty"`

	Price      int64       `gorm:"not null" json:"price"`
	PricePerKm int64       `gorm:"not null;default:0" json:"price_per_km"`
	Type       ServiceType `gorm:"type:varchar(20);not null;default:TRANSPORT" json:"type"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Service model
func (Service) TableName() string {
	return "services"
}
