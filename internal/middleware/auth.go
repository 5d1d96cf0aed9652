package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"volunteer-hub/internal/domain"
	"volunteer-hub/internal/service/auth"
)

const identityContextKey = "identity"

// AuthRequired resolves the caller identity from the Bearer token on every
// call. The identity is re-resolved per request, never cached.
func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return Unauthorized("Invalid authorization header format")
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		user, err := authService.GetUserByID(c.Context(), claims.UserID)
		if err != nil || user == nil {
			return Unauthorized("User not found")
		}

		c.Locals(identityContextKey, domain.Identity{ID: user.ID, Role: user.Role})

		return c.Next()
	}
}

// CurrentIdentity returns the authenticated caller, or a zero identity when
// the request did not pass AuthRequired.
func CurrentIdentity(c *fiber.Ctx) domain.Identity {
	identity, ok := c.Locals(identityContextKey).(domain.Identity)
	if !ok {
		return domain.Identity{}
	}
	return identity
}

func CurrentUserID(c *fiber.Ctx) uuid.UUID {
	return CurrentIdentity(c).ID
}
