package middleware

import (
	"foodshare-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const userLocal = "user"

// RequireAuth ensures a user is in the session. Returns 401 with standard error format if not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(userLocal) == nil {
			return response.Unauthorized(c, "Please sign in first")
		}
		return c.Next()
	}
}

// GetUser returns the session user from Locals (nil if not signed in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}
