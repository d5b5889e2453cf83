package middleware

import (
	"log"
	"strings"

	"kedai/internal/models"
	"kedai/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ActorKey is the Locals key under which the authenticated actor is stored.
const ActorKey = "actor"

// ActorFrom returns the authenticated actor for a request, or nil for an
// unauthenticated caller.
func ActorFrom(c *fiber.Ctx) *models.Actor {
	if actor, ok := c.Locals(ActorKey).(*models.Actor); ok {
		return actor
	}
	return nil
}

// AuthRequired is a Fiber middleware that rejects requests without a valid
// bearer token.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorFromHeader(c, authService)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}
		if actor == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}
		c.Locals(ActorKey, actor)
		return c.Next()
	}
}

// OptionalAuth attaches an actor when a bearer token is present but lets
// anonymous requests through as guests. A token that is present but invalid
// is still rejected rather than silently downgraded to guest.
func OptionalAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorFromHeader(c, authService)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}
		if actor != nil {
			c.Locals(ActorKey, actor)
		}
		return c.Next()
	}
}

// AdminRequired rejects authenticated callers that do not carry the admin
// role. It must run after AuthRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !ActorFrom(c).IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Administrator role required",
			})
		}
		return c.Next()
	}
}

// actorFromHeader parses the Authorization header. It returns (nil, nil) when
// no header is present, and an error when a token is present but invalid.
func actorFromHeader(c *fiber.Ctx, authService *services.AuthService) (*models.Actor, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Authorization header format must be 'Bearer <token>'")
	}

	return authService.ValidateToken(parts[1])
}
