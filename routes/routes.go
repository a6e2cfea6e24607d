package routes

import (
	"pitch-booking/constants"
	bookingController "pitch-booking/controllers/booking"
	operatorController "pitch-booking/controllers/operator"
	paymentController "pitch-booking/controllers/payment"
	pitchController "pitch-booking/controllers/pitch"
	"pitch-booking/logger"
	"pitch-booking/middleware"
	bookingService "pitch-booking/services/booking"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, svc *bookingService.Service) {
	asyncLogger := logger.NewAsyncLogger(db)
	bookings := bookingController.NewBookingController(db, svc, asyncLogger)
	pitches := pitchController.NewPitchController(db)
	payments := paymentController.NewPaymentController(db, svc, asyncLogger)
	operators := operatorController.NewOperatorController(db)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "pitch-booking",
			"status":  "ok",
		})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/operator/register", operators.Register)
	api.Post("/operator/send-otp", operators.SendOTP)
	api.Post("/operator/verify-otp", operators.VerifyOTP)

	/*=============================================================================
	| Operator Routes
	===============================================================================*/
	operatorGroup := api.Group("/operator")

	operatorGroup.Get("/profile", middleware.RequireAnyPermission(), operators.Profile)
	operatorGroup.Put("/profile", middleware.RequireAnyPermission(), operators.UpdateProfile)

	/*=============================================================================
	| Pitch Routes
	===============================================================================*/
	pitchGroup := api.Group("/pitch")

	pitchGroup.Post("/create", middleware.RequirePermissions(
		constants.PermAdminFull,
		constants.PermOperatorFull,
	), pitches.Store)

	pitchGroup.Put("/:id", middleware.RequirePermissions(
		constants.PermAdminFull,
		constants.PermOperatorFull,
	), pitches.Update)

	pitchGroup.Get("/list", middleware.RequirePermissions(
		constants.BookingManagementPermissions...,
	), pitches.Index)

	/*=============================================================================
	| Booking Routes
	===============================================================================*/
	bookingGroup := api.Group("/booking")

	bookingGroup.Post("/create", middleware.RequirePermissions(
		constants.BookingManagementPermissions...,
	), bookings.Store)

	bookingGroup.Post("/check-conflict", middleware.RequirePermissions(
		constants.BookingManagementPermissions...,
	), bookings.CheckConflict)

	bookingGroup.Get("/list", middleware.RequirePermissions(
		constants.BookingManagementPermissions...,
	), bookings.Index)

	bookingGroup.Get("/:id", middleware.RequirePermissions(
		constants.BookingManagementPermissions...,
	), bookings.Show)

	bookingGroup.Put("/:id", middleware.RequirePermissions(
		constants.BookingManagementPermissions...,
	), bookings.Update)

	bookingGroup.Post("/:id/cancel", middleware.RequirePermissions(
		constants.BookingManagementPermissions...,
	), bookings.Cancel)

	// Hard delete is restricted to operator and admin roles
	bookingGroup.Delete("/:id", middleware.RequirePermissions(
		constants.PermAdminFull,
		constants.PermOperatorFull,
	), bookings.Destroy)

	/*=============================================================================
	| Payment Routes
	===============================================================================*/
	paymentGroup := api.Group("/payment")

	paymentGroup.Post("/apply", middleware.RequirePermissions(
		constants.BookingManagementPermissions...,
	), payments.Apply)

	paymentGroup.Get("/earnings", middleware.RequirePermissions(
		constants.PermAdminFull,
		constants.PermOperatorFull,
	), payments.Earnings)

	paymentGroup.Post("/parse-slip", middleware.RequirePermissions(
		constants.BookingManagementPermissions...,
	), payments.ParsePaymentSlip)
}
