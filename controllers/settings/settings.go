package settings

import (
	"github.com/gofiber/fiber/v2"

	"towing-booking/logger"
	settingsService "towing-booking/services/settings"
	"towing-booking/types"
)

// SettingsController exposes the public site settings map
type SettingsController struct {
	Provider settingsService.Provider
}

func NewSettingsController(provider settingsService.Provider) *SettingsController {
	return &SettingsController{Provider: provider}
}

// Index returns every site setting as a flat key/value map.
func (sc *SettingsController) Index(c *fiber.Ctx) error {
	all, err := sc.Provider.All()
	if err != nil {
		logger.Error("Failed to load settings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Settings retrieved successfully",
		Data:    all,
	})
}
