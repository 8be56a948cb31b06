package routes

import (
	"os"

	"towing-booking/controllers/booking"
	"towing-booking/controllers/catalog"
	"towing-booking/controllers/dashboard"
	"towing-booking/controllers/payment"
	settingsController "towing-booking/controllers/settings"
	"towing-booking/controllers/tracking"
	midtransService "towing-booking/httpServices/midtrans"
	osrmService "towing-booking/httpServices/osrm"
	"towing-booking/logger"
	"towing-booking/middleware"
	"towing-booking/repository"
	bookingService "towing-booking/services/booking"
	paymentService "towing-booking/services/payment"
	settingsService "towing-booking/services/settings"
	"towing-booking/services/pricing"
	"towing-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	osrmClient := osrmService.NewClient(os.Getenv("OSRM_BASE_URL"))
	snapClient := midtransService.NewClient(os.Getenv("MIDTRANS_BASE_URL"), os.Getenv("MIDTRANS_SERVER_KEY"))
	asyncLogger := logger.NewAsyncLogger(db)

	repo := repository.NewBookingRepository(db)
	calculator := pricing.NewCalculator(osrmClient)
	lifecycle := bookingService.New(repo, calculator, snapClient)
	reconciler := paymentService.NewReconciler(lifecycle, snapClient)
	settingsProvider := settingsService.NewProvider(db)
	validate := utils.NewValidator()

	bookingController := booking.NewBookingController(db, lifecycle, validate)
	trackingController := tracking.NewTrackingController(lifecycle)
	notificationController := payment.NewNotificationController(reconciler)
	catalogController := catalog.NewCatalogController(db)
	settingsCtrl := settingsController.NewSettingsController(settingsProvider)
	dashboardController := dashboard.NewDashboardController(db)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()
	app.Use(middleware.RequestLogger(asyncLogger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/bookings", bookingController.Store)
	api.Get("/track/:code", trackingController.Show)
	api.Get("/services", catalogController.Index)
	api.Get("/services/:slug", catalogController.Show)
	api.Get("/settings", settingsCtrl.Index)

	/*=============================================================================
	| Payment Gateway Callback
	===============================================================================*/
	api.Post("/midtrans/notification", notificationController.Handle)

	/*=============================================================================
	| Staff Routes
	===============================================================================*/
	staff := api.Group("/staff").Use(middleware.RequireStaff())
	staff.Get("/bookings", bookingController.Index)
	staff.Get("/bookings/export", bookingController.Export)
	staff.Patch("/bookings/status", bookingController.UpdateStatus)
	staff.Patch("/bookings/driver-location", bookingController.UpdateDriverLocation)
	staff.Get("/dashboard", dashboardController.Stats)
}
