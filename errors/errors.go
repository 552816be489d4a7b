package errors

import (
	"github.com/gofiber/fiber/v2"
)

// RaiseError writes the {"status","message","data"} envelope with an error status.
func RaiseError(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"data":    data})
}

func RaisePermissionsError(c *fiber.Ctx, data string) error {
	return RaiseError(c, fiber.StatusUnauthorized, "lack of permissions", data)
}

func RaiseUnauthorizedError(c *fiber.Ctx, message string) error {
	return RaiseError(c, fiber.StatusUnauthorized, message, nil)
}

func RaiseForbiddenError(c *fiber.Ctx, message string, data string) error {
	return RaiseError(c, fiber.StatusForbidden, message, data)
}

func RaiseBadRequestError(c *fiber.Ctx, data string) error {
	return RaiseError(c, fiber.StatusBadRequest, "bad request", data)
}

func RaiseNotFoundError(c *fiber.Ctx, data string) error {
	return RaiseError(c, fiber.StatusNotFound, "resource not found", data)
}

// RaiseConflictError reports a resource that exists but is not in a state to serve the request.
func RaiseConflictError(c *fiber.Ctx, data string) error {
	return RaiseError(c, fiber.StatusConflict, "conflict", data)
}

func RaiseInternalServerError(c *fiber.Ctx, data string) error {
	return RaiseError(c, fiber.StatusInternalServerError, "internal error", data)
}
