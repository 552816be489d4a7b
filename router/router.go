package router

import (
	"banquet-admin/handlers"
	"banquet-admin/middleware"
	"banquet-admin/model"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	api := app.Group("/", logger.New())
	api.Get("/health", h.GetHealth)

	secured := []fiber.Handler{
		middleware.Authorize(h.Config.Sign),
		middleware.RequireSession(h.Sessions),
		middleware.RequireRole(model.RoleAdmin, model.RoleStaff),
	}

	//Login
	login := api.Group("/login")
	login.Post("/", h.Login)
	api.Post("/logout", append(secured, h.Logout)...)

	//Booking
	booking := api.Group("/bookings", secured...)
	booking.Get("/", h.GetBookings)
	booking.Get("/:bookingId", h.GetBooking)
	booking.Post("/:bookingId/chef-preview", h.OpenChefPreview)

	//Chef preview
	previews := api.Group("/previews", secured...)
	previews.Get("/", middleware.RequireRole(model.RoleAdmin), h.GetPreviews)
	previews.Get("/:previewId", h.GetPreview)
	previews.Get("/:previewId/print", h.PrintPreview)
	previews.Delete("/:previewId", h.DismissPreview)
}
