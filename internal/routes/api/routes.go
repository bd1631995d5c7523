package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/burst/internal/config"
	"github.com/lk16/flippy/burst/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App, cfg *config.ServerConfig) {
	apiGroup := app.Group("/api")

	// Game routes
	gamesGroup := apiGroup.Group("/games")
	gamesGroup.Post("/", CreateGame)
	gamesGroup.Get("/:id", GetGame)
	gamesGroup.Delete("/:id", DeleteGame)
	gamesGroup.Post("/:id/moves", PlaceMove)
	gamesGroup.Post("/:id/special", ActivateSpecial)
	gamesGroup.Post("/:id/reset", ResetGame)

	// Result routes
	apiGroup.Get("/stats", middleware.AuthOrToken(cfg), GetStats)
}
