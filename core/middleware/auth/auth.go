package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// Config holds settings for the API key middleware.
type Config struct {
	// ApiKey is the expected key. When empty, authentication is disabled.
	ApiKey string
}

// New returns a middleware that requires the X-API-Key header to match the
// configured key. Comparison is constant-time.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" {
			return c.Next()
		}
		key := c.Get("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.ApiKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing API key",
			})
		}
		return c.Next()
	}
}
