package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"towing-booking/logger"
	"towing-booking/types"
)

// RequestLogger captures method, URL, bodies and status of every request and
// hands them to the async logger for database persistence.
func RequestLogger(asyncLogger *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		asyncLogger.Log(types.LogEntry{
			Method:       c.Method(),
			URL:          c.OriginalURL(),
			RequestBody:  string(c.Body()),
			ResponseBody: string(c.Response().Body()),
			StatusCode:   c.Response().StatusCode(),
			CreatedAt:    time.Now(),
		})

		return err
	}
}
