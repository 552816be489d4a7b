package handlers

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"banquet-admin/auth"
	"banquet-admin/errors"
	"banquet-admin/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt"
)

const bookingListPath = "/banquet/list-booking"

type Credentials struct {
	Login    string `json:"login" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var creds = new(Credentials)

	if err := c.BodyParser(creds); err != nil {
		return errors.RaiseBadRequestError(c, "Please enter both email and password!")
	}
	creds.Login = strings.TrimSpace(creds.Login)
	creds.Password = strings.TrimSpace(creds.Password)

	if err := h.validate.Struct(creds); err != nil {
		return errors.RaiseBadRequestError(c, "Please enter both email and password!")
	}

	user, err := h.Verifier.Verify(c.UserContext(), creds.Login, creds.Password)
	switch {
	case stderrors.Is(err, auth.ErrMissingCredentials):
		return errors.RaiseBadRequestError(c, "Please enter both email and password!")
	case stderrors.Is(err, auth.ErrUserNotFound):
		return errors.RaiseUnauthorizedError(c, "User not found!")
	case stderrors.Is(err, auth.ErrIncorrectPassword):
		return errors.RaiseUnauthorizedError(c, "Incorrect password!")
	case stderrors.Is(err, auth.ErrInactiveAccount):
		return errors.RaiseForbiddenError(c, "This account is inactive!", "")
	case err != nil:
		h.Log.Error().Err(err).Msg("credential verification failed")
		return errors.RaiseInternalServerError(c, "cannot verify credentials")
	}

	sess := h.Sessions.Start(user)

	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = user.Login
	claims["name"] = user.Name
	claims["role"] = user.Role
	claims["sid"] = sess.Id
	if !sess.ExpiresAt.IsZero() {
		claims["exp"] = sess.ExpiresAt.Unix()
	}

	t, err := token.SignedString([]byte(h.Config.Sign))
	if err != nil {
		h.Sessions.End(sess.Id)
		return errors.RaiseInternalServerError(c, "cannot sign token")
	}
	h.Sessions.SetToken(sess.Id, t)

	h.Log.Info().Str("login", user.Login).Str("role", user.Role).Str("session", sess.Id).Msg("user signed in")

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Welcome %v!", user.Name),
		"data": fiber.Map{
			"token":    t,
			"redirect": bookingListPath,
			"expires":  sess.ExpiresAt.UTC().Format(time.RFC3339),
			"user": fiber.Map{
				"login": user.Login,
				"name":  user.Name,
				"role":  user.Role,
			},
		},
	})
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return errors.RaiseUnauthorizedError(c, "no active session")
	}

	dismissed := h.Previews.DismissSession(sess.Id)
	h.Sessions.End(sess.Id)

	h.Log.Info().Str("login", sess.Login).Int("previews_dismissed", dismissed).Msg("user signed out")

	return c.JSON(fiber.Map{"status": "success", "message": "Signed out", "data": nil})
}
