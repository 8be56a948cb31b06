package payment

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	midtransService "towing-booking/httpServices/midtrans"
	"towing-booking/logger"
	bookingService "towing-booking/services/booking"
	paymentService "towing-booking/services/payment"
	paymentTypes "towing-booking/types/payment"
)

// NotificationController receives the server-to-server payment webhook
type NotificationController struct {
	Reconciler *paymentService.Reconciler
}

func NewNotificationController(reconciler *paymentService.Reconciler) *NotificationController {
	return &NotificationController{Reconciler: reconciler}
}

// Handle processes one Midtrans notification. 403 on a bad signature, 404 for
// an unknown order, non-200 on persistence trouble so the gateway redelivers,
// and 200 for everything the reconciler settled (applied or deliberately
// skipped).
func (nc *NotificationController) Handle(c *fiber.Ctx) error {
	var n paymentTypes.Notification
	if err := c.BodyParser(&n); err != nil {
		logger.Error("Failed to parse payment notification", err)
		return c.Status(fiber.StatusBadRequest).JSON(paymentTypes.Ack{Status: "INVALID_BODY"})
	}

	result, err := nc.Reconciler.Apply(n)
	if err != nil {
		if errors.Is(err, midtransService.ErrInvalidSignature) {
			logger.Warning("Rejected payment notification with invalid signature for order " + n.OrderID)
			return c.Status(fiber.StatusForbidden).JSON(paymentTypes.Ack{Status: "INVALID_SIGNATURE"})
		}
		if errors.Is(err, bookingService.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(paymentTypes.Ack{Status: "ORDER_NOT_FOUND"})
		}
		logger.Error("Failed to apply payment notification", err)
		return c.Status(fiber.StatusInternalServerError).JSON(paymentTypes.Ack{Status: "ERROR"})
	}

	if !result.Applied {
		return c.Status(fiber.StatusOK).JSON(paymentTypes.Ack{Status: "IGNORED"})
	}
	return c.Status(fiber.StatusOK).JSON(paymentTypes.Ack{Status: "OK"})
}
