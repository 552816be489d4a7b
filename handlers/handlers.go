package handlers

import (
	"time"

	"banquet-admin/auth"
	"banquet-admin/config"
	"banquet-admin/database"
	"banquet-admin/preview"
	"banquet-admin/session"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Deps are the collaborators the HTTP handlers work with.
type Deps struct {
	Config   *config.Config
	Log      zerolog.Logger
	Verifier auth.Verifier
	Sessions *session.Store
	Bookings database.BookingStore
	Previews *preview.Manager
}

type Handler struct {
	Deps
	validate *validator.Validate
	now      func() time.Time
}

func New(deps Deps) *Handler {
	return &Handler{
		Deps:     deps,
		validate: validator.New(),
		now:      time.Now,
	}
}

func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "success", "message": "ok", "data": nil})
}
