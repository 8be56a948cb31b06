package catalog

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"towing-booking/logger"
	serviceModel "towing-booking/models/service"
	"towing-booking/types"
)

// CatalogController serves the public service catalog
type CatalogController struct {
	DB *gorm.DB
}

func NewCatalogController(db *gorm.DB) *CatalogController {
	return &CatalogController{DB: db}
}

// Index lists the active services the booking form can select from.
func (cc *CatalogController) Index(c *fiber.Ctx) error {
	var services []serviceModel.Service
	err := cc.DB.Where("is_active = ?", true).
		Order("id ASC").
		Find(&services).Error
	if err != nil {
		logger.Error("Failed to list services", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Services retrieved successfully",
		Data:    services,
	})
}

// Show returns a single active service by slug.
func (cc *CatalogController) Show(c *fiber.Ctx) error {
	var svc serviceModel.Service
	err := cc.DB.Where("slug = ? AND is_active = ?", c.Params("slug"), true).
		First(&svc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Service not found",
			})
		}
		logger.Error("Failed to load service", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Service retrieved successfully",
		Data:    svc,
	})
}
