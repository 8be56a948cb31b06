package booking

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"towing-booking/logger"
	bookingModel "towing-booking/models/booking"
	"towing-booking/types"
)

// Export streams the filtered booking list as an Excel-compatible HTML table.
// It shares the status / text / date-range filters with Index.
func (bc *BookingController) Export(c *fiber.Ctx) error {
	query := bc.DB.Model(&bookingModel.Booking{}).Preload("Service")
	query = applyFilters(query, c.Query("status"), c.Query("q"), c.Query("date"))

	var bookings []bookingModel.Booking
	if err := query.Order("created_at DESC").Find(&bookings).Error; err != nil {
		logger.Error("Failed to export bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var sb strings.Builder
	sb.WriteString("<table border=\"1\"><tr>")
	for _, h := range []string{
		"Tracking Code", "Customer", "Phone", "Service", "Vehicle",
		"Pickup", "Drop-off", "Notes", "Distance (km)", "Payment",
		"Payment Status", "Total", "Status", "Created At",
	} {
		sb.WriteString("<th>" + h + "</th>")
	}
	sb.WriteString("</tr>")

	for _, b := range bookings {
		drop := ""
		if b.DropLocation != nil {
			drop = *b.DropLocation
		}
		notes := ""
		if b.Notes != nil {
			notes = *b.Notes
		}
		distance := ""
		if b.Distance != nil {
			distance = fmt.Sprintf("%.2f", *b.Distance)
		}

		sb.WriteString("<tr>")
		for _, cell := range []string{
			b.TrackingCode,
			b.CustomerName,
			b.CustomerPhone,
			b.Service.Title,
			b.VehicleType,
			b.PickupLocation,
			drop,
			notes,
			distance,
			string(b.PaymentMethod),
			string(b.PaymentStatus),
			fmt.Sprintf("%d", b.TotalAmount),
			string(b.Status),
			b.CreatedAt.Format("2006-01-02 15:04"),
		} {
			sb.WriteString("<td>" + html.EscapeString(cell) + "</td>")
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</table>")

	filename := fmt.Sprintf("bookings-%s.xls", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.ms-excel")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.SendString(sb.String())
}
