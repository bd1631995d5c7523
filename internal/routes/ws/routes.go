package ws

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/burst/internal/games"
	"github.com/lk16/flippy/burst/internal/repository"
	"github.com/lk16/flippy/burst/internal/services"
	"github.com/lk16/flippy/burst/internal/ws"
)

func handleWs(c *websocket.Conn) {
	services := c.Locals("services").(*services.Services)           //nolint: errcheck
	sessions := c.Locals("sessions").(repository.SessionRepository) //nolint: errcheck

	h := ws.NewHandler(c, games.NewServiceFromServices(sessions, services))
	err := h.Handle()
	if err != nil {
		slog.Debug("ws connection closed", "error", err)
	}
}

func upgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// SetupRoutes sets up the routes for the websocket.
func SetupRoutes(app *fiber.App) {
	app.Get("/ws", upgradeRequired, websocket.New(handleWs))
}
