package http

import (
	"strings"

	"hubsync/internal/shared/contextkeys"
	"hubsync/internal/sync/adapter/security"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// AuthMiddleware guards the trigger API with service tokens.
type AuthMiddleware struct {
	validator *security.ServiceTokenValidator
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(validator *security.ServiceTokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// CORS middleware for the trigger API
func (m *AuthMiddleware) CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       86400, // 24 hours
	})
}

// Protect requires a valid bearer service token
func (m *AuthMiddleware) Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing bearer token",
			})
		}

		claims, err := m.validator.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		c.Locals(string(contextkeys.RequestIDKey), c.Get(fiber.HeaderXRequestID))
		c.Locals("service", claims.Service)
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
