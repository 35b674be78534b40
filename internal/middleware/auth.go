package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/interviewmate/backend/internal/dto"
	"github.com/interviewmate/backend/internal/sessions"
)

// RequireSession rejects requests without an authenticated session and puts
// the session's user summary into request locals for downstream handlers.
func RequireSession(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			slog.Error("session lookup failed", "error", err, "path", c.Path())
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}

		user, ok := sessions.UserFrom(sess)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Not authenticated",
			})
		}

		sessions.SetCurrentUser(c, user)
		return c.Next()
	}
}

// RequireSelf ensures the :userId path parameter refers to the session user.
func RequireSelf() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := sessions.CurrentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Not authenticated",
			})
		}
		if c.Params("userId") != user.ID.String() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "You can only access your own interviews",
			})
		}
		return c.Next()
	}
}
