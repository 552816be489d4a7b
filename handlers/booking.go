package handlers

import (
	stderrors "errors"
	"fmt"

	"banquet-admin/database"
	"banquet-admin/errors"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetBookings(c *fiber.Ctx) error {
	bookings, dbErr := h.Bookings.GetBookings(c.UserContext())
	if dbErr != nil {
		h.Log.Error().Err(dbErr).Msg("cannot list bookings")
		return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", dbErr))
	}

	return c.JSON(fiber.Map{"status": "success", "message": "bookings", "data": bookings})
}

func (h *Handler) GetBooking(c *fiber.Ctx) error {
	booking, dbErr := h.Bookings.GetBooking(c.UserContext(), c.Params("bookingId"))
	if stderrors.Is(dbErr, database.ErrBookingNotFound) {
		return errors.RaiseNotFoundError(c, fmt.Sprintf("booking %v not found", c.Params("bookingId")))
	}
	if dbErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", dbErr))
	}

	return c.JSON(fiber.Map{"status": "success", "message": "booking", "data": booking})
}
