package middleware

import (
	"strings"

	"stockroom/internal/models"
	"stockroom/internal/services"

	"github.com/gofiber/fiber/v2"
)

// LocalUser is the Locals key under which AuthRequired stores the
// authenticated user.
const LocalUser = "user"

// AuthRequired is a Fiber middleware that verifies the bearer token,
// loads the asserted user and attaches it to the request context.
// Requests with a missing, malformed, invalid or expired token are
// rejected before any handler logic runs.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		user, err := authService.UserFromToken(strings.TrimSpace(parts[1]))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid or expired token",
			})
		}

		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// AdminRequired is a Fiber middleware that rejects requests whose
// authenticated user does not hold the admin role. It must run after
// AuthRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authentication required",
			})
		}
		if !user.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Admin role required",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated user attached by AuthRequired,
// or nil when the request is unauthenticated.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(LocalUser).(*models.User)
	return user
}
