package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"volunteer-hub/internal/domain"
)

// RequireRole restricts a route to the listed roles. Roles are flat, not
// hierarchical, except that admins always pass.
func RequireRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := CurrentIdentity(c)
		if identity.ID == uuid.Nil {
			return Unauthorized("Authentication required")
		}
		if identity.Role == domain.RoleAdmin {
			return c.Next()
		}
		for _, role := range roles {
			if identity.Role == role {
				return c.Next()
			}
		}
		return Forbidden("Insufficient permissions")
	}
}
