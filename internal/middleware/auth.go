package middleware

import (
	"strings"

	"github.com/datatrail-io/datatrail/internal/services"
	"github.com/datatrail-io/datatrail/internal/types"
	"github.com/gofiber/fiber/v2"
)

// AuthRequired validates the bearer token and stores the username in the
// request context.
func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Missing bearer token",
				Type:    "auth.token.missing",
			}
		}

		username, err := services.ValidateToken(secret, token)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Invalid session token",
				Type:    "auth.token.invalid",
			}
		}

		c.Locals("username", username)
		return c.Next()
	}
}
