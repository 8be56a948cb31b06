package tracking

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"towing-booking/logger"
	bookingService "towing-booking/services/booking"
	"towing-booking/types"
	bookingTypes "towing-booking/types/booking"
)

// TrackingController serves the public tracking lookup
type TrackingController struct {
	Lifecycle *bookingService.Service
}

func NewTrackingController(lifecycle *bookingService.Service) *TrackingController {
	return &TrackingController{Lifecycle: lifecycle}
}

// Show looks up a booking by its tracking code. The response never leaks the
// internal booking id, and the driver position only appears while the booking
// is actively en route.
func (tc *TrackingController) Show(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Tracking code is required",
		})
	}

	b, err := tc.Lifecycle.TrackByCode(code)
	if err != nil {
		if errors.Is(err, bookingService.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
			})
		}
		logger.Error("Failed to look up tracking code", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to look up booking",
		})
	}

	resp := bookingTypes.TrackingResponse{
		TrackingCode:   b.TrackingCode,
		ServiceTitle:   b.Service.Title,
		CustomerName:   b.CustomerName,
		PickupLocation: b.PickupLocation,
		DropLocation:   b.DropLocation,
		VehicleType:    b.VehicleType,
		PaymentMethod:  b.PaymentMethod,
		PaymentStatus:  b.PaymentStatus,
		TotalAmount:    b.TotalAmount,
		Distance:       b.Distance,
		Status:         b.Status,
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      b.UpdatedAt.Format(time.RFC3339),
	}
	if b.DriverPositionVisible() {
		resp.DriverLat = b.DriverLat
		resp.DriverLng = b.DriverLng
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
