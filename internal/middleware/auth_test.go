package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interviewmate/backend/internal/dto"
	"github.com/interviewmate/backend/internal/sessions"
)

func TestRequireSession_Unauthenticated(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", RequireSession(session.New()), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/protected", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var errResp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, "Not authenticated", errResp.Message)
}

func TestRequireSelf_OtherUser(t *testing.T) {
	me := dto.UserResponse{ID: uuid.New(), Name: "Asha", Email: "a@b.com"}
	other := uuid.New()

	app := fiber.New()
	app.Get("/interviews/:userId",
		func(c *fiber.Ctx) error {
			sessions.SetCurrentUser(c, me)
			return c.Next()
		},
		RequireSelf(),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/interviews/"+other.String(), nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireSelf_SameUser(t *testing.T) {
	me := dto.UserResponse{ID: uuid.New(), Name: "Asha", Email: "a@b.com"}

	app := fiber.New()
	app.Get("/interviews/:userId",
		func(c *fiber.Ctx) error {
			sessions.SetCurrentUser(c, me)
			return c.Next()
		},
		RequireSelf(),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/interviews/"+me.ID.String(), nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
