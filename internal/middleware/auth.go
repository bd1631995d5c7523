package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/lk16/flippy/burst/internal/config"
)

func unauthorized(c *fiber.Ctx) error {
	// This triggers the browser to show a login dialog
	c.Set("WWW-Authenticate", `Basic realm="Restricted"`)

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}

// BasicAuth only lets requests with the configured credentials through.
func BasicAuth(cfg *config.ServerConfig) fiber.Handler {
	return basicauth.New(basicauth.Config{
		Users: map[string]string{
			cfg.BasicAuthUsername: cfg.BasicAuthPassword,
		},
		Realm:        "Restricted",
		Unauthorized: unauthorized,
	})
}

// AuthOrToken accepts either basic auth or the configured token in the x-token header.
func AuthOrToken(cfg *config.ServerConfig) fiber.Handler {
	basicAuth := BasicAuth(cfg)

	return func(c *fiber.Ctx) error {
		token := c.Get("x-token")
		if token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(cfg.Token)) == 1 {
			return c.Next()
		}

		return basicAuth(c)
	}
}
