package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/burst/internal/config"
	"github.com/lk16/flippy/burst/internal/routes/api"
	"github.com/lk16/flippy/burst/internal/routes/version"
	"github.com/lk16/flippy/burst/internal/routes/ws"
)

func rootHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":      "flippy burst",
		"games":     "/api/games",
		"websocket": "/ws",
		"version":   "/version",
	})
}

func SetupRoutes(app *fiber.App, cfg *config.ServerConfig) {
	// Serve API routes
	api.SetupRoutes(app, cfg)

	// Serve websocket commands
	ws.SetupRoutes(app)

	// Serve version info
	version.SetupRoutes(app)

	// Serve root page
	app.Get("/", rootHandler)
}
