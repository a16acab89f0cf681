package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// CurrentAPIVersion is what callers get when they don't ask for anything.
const CurrentAPIVersion = "1.0.0"

// aliases maps short version spellings to their canonical form.
var aliases = map[string]string{
	"1":   CurrentAPIVersion,
	"1.0": CurrentAPIVersion,
}

// APIVersion resolves the X-Api-Version request header, stores the
// canonical version in the request context, and echoes it on the response.
func APIVersion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", CurrentAPIVersion)
		if canonical, ok := aliases[version]; ok {
			version = canonical
		}

		c.Locals("apiVersion", version)
		c.Set("X-Api-Version", version)
		return c.Next()
	}
}
