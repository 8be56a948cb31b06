package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"towing-booking/logger"
	bookingModel "towing-booking/models/booking"
	"towing-booking/types"
)

// DashboardController aggregates booking stats for the staff dashboard
type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// Stats returns the dashboard headline numbers: per-status counts, revenue,
// today's and this month's volume, and the five most recent bookings.
func (dc *DashboardController) Stats(c *fiber.Ctx) error {
	statusCounts := make(map[string]int64)
	for _, status := range bookingModel.GetAllBookingStatuses() {
		var count int64
		if err := dc.DB.Model(&bookingModel.Booking{}).
			Where("status = ?", status).
			Count(&count).Error; err != nil {
			return dc.dbError(c, err)
		}
		statusCounts[string(status)] = count
	}

	var total int64
	if err := dc.DB.Model(&bookingModel.Booking{}).Count(&total).Error; err != nil {
		return dc.dbError(c, err)
	}

	// Revenue counts paid-online bookings plus completed cash jobs.
	var revenue int64
	err := dc.DB.Model(&bookingModel.Booking{}).
		Where("payment_status = ? OR status = ?",
			bookingModel.PaymentStatusPaid, bookingModel.BookingStatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	if err != nil {
		return dc.dbError(c, err)
	}

	var todayCount int64
	if err := dc.DB.Model(&bookingModel.Booking{}).
		Where("created_at >= ?", now.BeginningOfDay()).
		Count(&todayCount).Error; err != nil {
		return dc.dbError(c, err)
	}

	var monthCount int64
	if err := dc.DB.Model(&bookingModel.Booking{}).
		Where("created_at >= ?", now.BeginningOfMonth()).
		Count(&monthCount).Error; err != nil {
		return dc.dbError(c, err)
	}

	var recent []bookingModel.Booking
	if err := dc.DB.Preload("Service").
		Order("created_at DESC").
		Limit(5).
		Find(&recent).Error; err != nil {
		return dc.dbError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Dashboard stats retrieved successfully",
		Data: fiber.Map{
			"total_bookings":  total,
			"status_counts":   statusCounts,
			"revenue":         revenue,
			"today_bookings":  todayCount,
			"month_bookings":  monthCount,
			"recent_bookings": recent,
		},
	})
}

func (dc *DashboardController) dbError(c *fiber.Ctx, err error) error {
	logger.Error("Failed to load dashboard stats", err)
	return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
		Status:  fiber.StatusInternalServerError,
		Message: "Database error",
	})
}
