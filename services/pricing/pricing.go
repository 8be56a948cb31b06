package pricing

import (
	"fmt"
	"math"

	"towing-booking/logger"
)

// Router is the outbound routing dependency: driving distance in km between
// two points. Satisfied by httpServices/osrm.
type Router interface {
	DrivingDistanceKm(fromLat, fromLng, toLat, toLng float64) (float64, error)
}

// Source records how a quote was produced, so callers can tell a routed price
// from a flat fallback without null-checking the distance.
type Source string

const (
	SourceRouted Source = "routed"
	SourceFlat   Source = "flat"
)

// Coordinate is a latitude/longitude pair.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Quote is the result of a pricing computation. Distance is nil when the
// total is the flat base price.
type Quote struct {
	Distance *float64
	Total    int64
	Source   Source
}

// Calculator turns a service's rates and an optional coordinate pair into a
// final price. It holds no state beyond the routing dependency.
type Calculator struct {
	router Router
}

func NewCalculator(router Router) *Calculator {
	return &Calculator{router: router}
}

// Quote computes the final price for a booking.
//
// Without both coordinate pairs the price is the flat base price. With both,
// the routing provider supplies a driving distance and the total becomes
// ceil(basePrice + distance*perKm), rounded up so a fractional kilometer is
// never undercharged. Any routing failure degrades to the flat price instead
// of failing the booking.
func (c *Calculator) Quote(basePrice, perKm int64, origin, destination *Coordinate) Quote {
	flat := Quote{Distance: nil, Total: basePrice, Source: SourceFlat}

	if origin == nil || destination == nil {
		return flat
	}

	distance, err := c.router.DrivingDistanceKm(origin.Lat, origin.Lng, destination.Lat, destination.Lng)
	if err != nil {
		logger.Warning(fmt.Sprintf("Routing lookup failed, falling back to flat price: %v", err))
		return flat
	}

	total := int64(math.Ceil(float64(basePrice) + distance*float64(perKm)))
	if total < basePrice {
		total = basePrice
	}

	return Quote{Distance: &distance, Total: total, Source: SourceRouted}
}
