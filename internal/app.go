package internal

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/burst/internal/config"
	"github.com/lk16/flippy/burst/internal/middleware"
	"github.com/lk16/flippy/burst/internal/repository"
	"github.com/lk16/flippy/burst/internal/routes"
	"github.com/lk16/flippy/burst/internal/services"
)

const (
	defaultConcurrency  = 256 * 1024 // Maximum number of concurrent connections per worker
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 5 * time.Second
	defaultBodyLimit    = 64 * 1024
	schemaTimeout       = 10 * time.Second
)

// BuildApp creates the Fiber app with all middleware and routes.
func BuildApp(cfg *config.ServerConfig, services *services.Services, sessions repository.SessionRepository) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:      cfg.Prefork,
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	// Setup connections to external services and config in Fiber app
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("services", services)
		c.Locals("sessions", sessions)
		c.Locals("config", cfg)
		return c.Next()
	})

	// Add logging middleware
	app.Use(middleware.Logging())

	// Setup all routes
	routes.SetupRoutes(app, cfg)

	return app
}

// SetupApp loads the configuration, connects to external services and builds the app.
func SetupApp() (*fiber.App, *config.ServerConfig) {
	// Load configuration
	cfg := config.LoadServerConfig()

	// Initialize services
	services, err := services.InitServices(cfg)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	results := repository.NewResultRepositoryFromServices(services)
	if results.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
		defer cancel()

		if err = results.EnsureSchema(ctx); err != nil {
			slog.Error("Failed to create results table", "error", err)
			os.Exit(1)
		}
	}

	if cfg.Prefork && services.Redis == nil {
		slog.Warn("Prefork without Redis, each worker process keeps its own sessions")
	}

	sessions := repository.NewSessionRepositoryFromServices(services, cfg.SessionTTL)

	return BuildApp(cfg, services, sessions), cfg
}
