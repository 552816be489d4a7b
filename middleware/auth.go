package middleware

import (
	"strings"

	"banquet-admin/errors"
	"banquet-admin/model"
	"banquet-admin/session"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	IdentityKey = "identity"
	SessionKey  = "session"
)

func Authorize(sign string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(sign),
		ErrorHandler: jwtError,
		ContextKey:   IdentityKey,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

func Claims(c *fiber.Ctx) jwt.MapClaims {
	token, ok := c.Locals(IdentityKey).(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

// RequireSession rejects tokens whose session was ended by logout.
func RequireSession(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid, _ := Claims(c)["sid"].(string)
		sess, ok := store.Get(sid)
		if !ok {
			return errors.RaiseUnauthorizedError(c, "session has ended, please sign in again")
		}
		c.Locals(SessionKey, sess)
		return c.Next()
	}
}

func CurrentSession(c *fiber.Ctx) (session.Session, bool) {
	sess, ok := c.Locals(SessionKey).(session.Session)
	return sess, ok
}

func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := Claims(c)["role"].(string)
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return errors.RaisePermissionsError(c, "only "+strings.Join(allowedRoles, "/")+" can perform this operation")
	}
}

func IsAdminRole(c *fiber.Ctx) bool {
	role, _ := Claims(c)["role"].(string)
	return role == model.RoleAdmin
}
