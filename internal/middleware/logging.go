package middleware

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// Logging logs one line per request with status, latency and the game session if there is one.
func Logging() fiber.Handler {
	return LoggingTo(os.Stdout)
}

// LoggingTo is Logging with a custom output.
func LoggingTo(output io.Writer) fiber.Handler {
	return logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} | ${path}${game}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
		Output:     output,
		CustomTags: map[string]logger.LogFunc{
			"latency": func(output logger.Buffer, _ *fiber.Ctx, data *logger.Data, _ string) (int, error) {
				latency := float64(data.Stop.Sub(data.Start).Nanoseconds()) / float64(time.Millisecond)
				return fmt.Fprintf(output, "%6.1fms", latency)
			},
			"game": func(output logger.Buffer, c *fiber.Ctx, _ *logger.Data, _ string) (int, error) {
				id, ok := c.Locals("game_id").(string)
				if !ok || id == "" {
					return 0, nil
				}
				return fmt.Fprintf(output, " | game=%s", id)
			},
		},
	})
}
