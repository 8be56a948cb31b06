package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"towing-booking/logger"
	"towing-booking/middleware"
	bookingModel "towing-booking/models/booking"
	bookingService "towing-booking/services/booking"
	"towing-booking/types"
	bookingTypes "towing-booking/types/booking"
	"towing-booking/utils"
)

// BookingController handles booking-related HTTP requests
type BookingController struct {
	DB        *gorm.DB
	Lifecycle *bookingService.Service
	Validator *validator.Validate
}

// NewBookingController creates a new booking controller
func NewBookingController(db *gorm.DB, lifecycle *bookingService.Service, v *validator.Validate) *BookingController {
	return &BookingController{
		DB:        db,
		Lifecycle: lifecycle,
		Validator: v,
	}
}

// Store creates a new booking from the public form, prices it, and for the
// online flow returns the gateway charge token alongside the booking.
func (bc *BookingController) Store(c *fiber.Ctx) error {
	var req bookingTypes.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse booking request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := bc.Validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	booking, token, err := bc.Lifecycle.Create(req, "customer")
	if err != nil {
		if errors.Is(err, bookingService.ErrServiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Service not found",
			})
		}
		if isValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: err.Error(),
			})
		}
		logger.Error("Failed to create booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to process booking",
		})
	}

	// The creation response is the raw booking object plus the token when
	// one was obtained, not the staff envelope. This shape is what the
	// public booking form consumes.
	return c.Status(fiber.StatusCreated).JSON(bookingTypes.CreateBookingResponse{
		Booking:       booking,
		MidtransToken: token,
	})
}

// Index lists bookings for the dashboard with status / text / date-range /
// pagination filters.
func (bc *BookingController) Index(c *fiber.Ctx) error {
	page := utils.QueryInt(c.Query("page"), 1)
	limit := utils.QueryInt(c.Query("limit"), 20)

	query := bc.DB.Model(&bookingModel.Booking{}).Preload("Service")
	query = applyFilters(query, c.Query("status"), c.Query("q"), c.Query("date"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var bookings []bookingModel.Booking
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		logger.Error("Failed to list bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bookings retrieved successfully",
		Data: fiber.Map{
			"bookings": bookings,
			"total":    total,
			"page":     page,
			"limit":    limit,
		},
	})
}

// UpdateStatus applies a staff-issued lifecycle transition.
func (bc *BookingController) UpdateStatus(c *fiber.Ctx) error {
	var req bookingTypes.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(bookingTypes.ActionResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(bookingTypes.ActionResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	_, err := bc.Lifecycle.UpdateStatus(req.BookingID, bookingModel.BookingStatus(req.Status), middleware.StaffName(c))
	if err != nil {
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, bookingService.ErrBookingNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, bookingService.ErrTerminalStatus), errors.Is(err, bookingService.ErrInvalidTransition):
			status = fiber.StatusConflict
		default:
			logger.Error("Failed to update booking status", err)
		}
		return c.Status(status).JSON(bookingTypes.ActionResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(bookingTypes.ActionResponse{Success: true})
}

// UpdateDriverLocation stores the driver's live position for a booking.
func (bc *BookingController) UpdateDriverLocation(c *fiber.Ctx) error {
	var req bookingTypes.UpdateDriverLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(bookingTypes.ActionResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}
	if err := bc.Validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(bookingTypes.ActionResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	if err := bc.Lifecycle.UpdateDriverLocation(req.BookingID, req.Lat, req.Lng); err != nil {
		if errors.Is(err, bookingService.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(bookingTypes.ActionResponse{
				Success: false,
				Error:   err.Error(),
			})
		}
		logger.Error("Failed to update driver location", err)
		return c.Status(fiber.StatusInternalServerError).JSON(bookingTypes.ActionResponse{
			Success: false,
			Error:   "Failed to update driver location",
		})
	}

	return c.Status(fiber.StatusOK).JSON(bookingTypes.ActionResponse{Success: true})
}

func applyFilters(query *gorm.DB, status, q, dateRange string) *gorm.DB {
	if status != "" && status != "ALL" {
		query = query.Where("status = ?", status)
	}
	if q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"customer_name ILIKE ? OR id ILIKE ? OR tracking_code ILIKE ?",
			like, like, like,
		)
	}
	if start, ok := dateWindowStart(dateRange); ok {
		query = query.Where("created_at >= ?", start)
	}
	return query
}

// dateWindowStart maps the date filter vocabulary to the window's start.
// Unknown values mean no date filtering.
func dateWindowStart(dateRange string) (time.Time, bool) {
	switch dateRange {
	case "today":
		return now.BeginningOfDay(), true
	case "week":
		return now.BeginningOfWeek(), true
	case "month":
		return now.BeginningOfMonth(), true
	default:
		return time.Time{}, false
	}
}

func isValidationError(err error) bool {
	// Kind-specific request validation and unknown payment methods come back
	// as plain fmt errors from the lifecycle; everything else is wrapped in
	// sentinel errors.
	return err != nil &&
		!errors.Is(err, bookingService.ErrBookingNotFound) &&
		!errors.Is(err, bookingService.ErrServiceNotFound) &&
		!errors.Is(err, bookingService.ErrTrackingCodeExhausted) &&
		isRequestShaped(err)
}

func isRequestShaped(err error) bool {
	msg := err.Error()
	for _, marker := range []string{"required", "must be supplied", "unknown payment method", "unknown service type"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
