package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/config"
	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/models"
	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/utils"
)

const identityKey = "identity"

// AuthMiddleware authenticates the request token and stores the resulting
// identity in request-scoped locals for downstream handlers.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := utils.ExtractIdentityFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// RequireRole rejects callers whose authenticated role does not match.
// Must run after AuthMiddleware.
func RequireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := c.Locals(identityKey).(utils.Identity)
		if !ok {
			return utils.Unauthorized(c, "Unauthorized")
		}
		if identity.Role != role {
			return utils.Forbidden(c, "Forbidden - "+string(role)+" access required")
		}
		return c.Next()
	}
}

// CallerIdentity returns the identity stored by AuthMiddleware.
func CallerIdentity(c *fiber.Ctx) (utils.Identity, bool) {
	identity, ok := c.Locals(identityKey).(utils.Identity)
	return identity, ok
}

// CallerID returns the authenticated user ID, or uuid.Nil when the request
// was not authenticated.
func CallerID(c *fiber.Ctx) uuid.UUID {
	identity, ok := CallerIdentity(c)
	if !ok {
		return uuid.Nil
	}
	return identity.UserID
}
