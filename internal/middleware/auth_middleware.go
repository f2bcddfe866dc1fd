package middleware

import (
	"strings"

	"go-farm-store/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin validates the admin JWT and sets the admin email in context.
// When admin authentication is disabled every request passes.
func RequireAdmin(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !auth.Enabled() {
			c.Locals("admin_email", "anonymous")
			return c.Next()
		}

		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("admin_email", claims.Email)
		return c.Next()
	}
}
