package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lk16/flippy/burst/internal"
	"github.com/lk16/flippy/burst/internal/config"
)

func main() {
	config.SetLogLevel()

	// Setup app
	app, cfg := internal.SetupApp()

	// Stop accepting requests on interrupt
	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		slog.Info("Shutting down")
		if err := app.Shutdown(); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	// Start server
	address := cfg.ServerHost + ":" + cfg.ServerPort
	if err := app.Listen(address); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
