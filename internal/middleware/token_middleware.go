package middleware

import (
	"context"

	"kontak/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TokenHeader carries the session token of an authenticated request.
const TokenHeader = "X-API-TOKEN"

const userKey = "user"

// Authenticator resolves a session token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AuthRequired is a Fiber middleware that rejects requests without a valid
// session token and stores the authenticated user for the next handlers.
func AuthRequired(auth Authenticator, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.Authenticate(c.UserContext(), c.Get(TokenHeader))
		if err != nil {
			logger.Debug("authentication failed",
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			return err
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthRequired, or nil on an
// unauthenticated route.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}
