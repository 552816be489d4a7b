package handlers

import (
	"bytes"
	stderrors "errors"
	"fmt"

	"banquet-admin/database"
	"banquet-admin/errors"
	"banquet-admin/middleware"
	"banquet-admin/preview"
	"banquet-admin/render"

	"github.com/gofiber/fiber/v2"
)

type previewView struct {
	preview.Preview
	Sheet *render.Sheet `json:"sheet,omitempty"`
}

func (h *Handler) OpenChefPreview(c *fiber.Ctx) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return errors.RaiseUnauthorizedError(c, "no active session")
	}

	booking, dbErr := h.Bookings.GetBooking(c.UserContext(), c.Params("bookingId"))
	if stderrors.Is(dbErr, database.ErrBookingNotFound) {
		return errors.RaiseNotFoundError(c, fmt.Sprintf("booking %v not found", c.Params("bookingId")))
	}
	if dbErr != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("database error: %v", dbErr))
	}

	opened := h.Previews.Open(booking, sess.Id, sess.Token)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status":  "success",
		"message": "Loading menu...",
		"data":    h.view(opened)})
}

func (h *Handler) GetPreviews(c *fiber.Ctx) error {
	previews := h.Previews.List()
	views := make([]previewView, 0, len(previews))
	for _, p := range previews {
		views = append(views, previewView{Preview: p})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "previews", "data": views})
}

func (h *Handler) GetPreview(c *fiber.Ctx) error {
	p, err := h.ownedPreview(c)
	if err != nil || p == nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "message": string(p.Status), "data": h.view(*p)})
}

func (h *Handler) PrintPreview(c *fiber.Ctx) error {
	p, err := h.ownedPreview(c)
	if err != nil || p == nil {
		return err
	}
	if p.Status != preview.StatusReady {
		return errors.RaiseConflictError(c, "menu is still loading")
	}

	sheet := render.BuildSheet(p.Booking, p.Menu, h.now())
	var buf bytes.Buffer
	if err := render.Text(&buf, sheet); err != nil {
		h.Log.Error().Err(err).Str("preview", p.Id).Msg("cannot render chef instructions")
		return errors.RaiseInternalServerError(c, "cannot render chef instructions")
	}

	c.Attachment(sheet.Title + ".txt")
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Send(buf.Bytes())
}

func (h *Handler) DismissPreview(c *fiber.Ctx) error {
	p, err := h.ownedPreview(c)
	if err != nil || p == nil {
		return err
	}
	if err := h.Previews.Dismiss(p.Id); err != nil {
		return errors.RaiseNotFoundError(c, fmt.Sprintf("preview %v not found", p.Id))
	}

	return c.JSON(fiber.Map{"status": "success", "message": "preview closed", "data": nil})
}

// ownedPreview loads the preview named in the path. A nil preview means the
// error response has already been written.
func (h *Handler) ownedPreview(c *fiber.Ctx) (*preview.Preview, error) {
	p, err := h.Previews.Get(c.Params("previewId"))
	if err != nil {
		return nil, errors.RaiseNotFoundError(c, fmt.Sprintf("preview %v not found", c.Params("previewId")))
	}

	sess, _ := middleware.CurrentSession(c)
	if p.SessionId != sess.Id && !middleware.IsAdminRole(c) {
		return nil, errors.RaiseForbiddenError(c, "lack of permissions", "preview belongs to another session")
	}
	return &p, nil
}

func (h *Handler) view(p preview.Preview) previewView {
	v := previewView{Preview: p}
	if p.Status == preview.StatusReady {
		sheet := render.BuildSheet(p.Booking, p.Menu, h.now())
		v.Sheet = &sheet
	}
	return v
}
