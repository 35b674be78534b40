package sessions

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/interviewmate/backend/internal/dto"
)

const (
	keyUserID = "user_id"
	keyName   = "name"
	keyEmail  = "email"

	localsUser = "current_user"
)

// Establish writes the user summary into the session record and persists it.
func Establish(sess *session.Session, user dto.UserResponse) error {
	sess.Set(keyUserID, user.ID.String())
	sess.Set(keyName, user.Name)
	sess.Set(keyEmail, user.Email)
	return sess.Save()
}

// UserFrom reads the user summary out of a session record.
func UserFrom(sess *session.Session) (dto.UserResponse, bool) {
	raw, ok := sess.Get(keyUserID).(string)
	if !ok || raw == "" {
		return dto.UserResponse{}, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return dto.UserResponse{}, false
	}
	name, _ := sess.Get(keyName).(string)
	email, _ := sess.Get(keyEmail).(string)
	return dto.UserResponse{ID: id, Name: name, Email: email}, true
}

// SetCurrentUser stores the authenticated user in request locals.
func SetCurrentUser(c *fiber.Ctx, user dto.UserResponse) {
	c.Locals(localsUser, user)
}

// CurrentUser extracts the authenticated user placed in request locals by the
// session middleware.
func CurrentUser(c *fiber.Ctx) (dto.UserResponse, error) {
	user, ok := c.Locals(localsUser).(dto.UserResponse)
	if !ok {
		return dto.UserResponse{}, errors.New("no authenticated user in context")
	}
	return user, nil
}
