package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/burst/internal/repository"
)

// GetStats returns the number of finished games by human side and winner.
func GetStats(c *fiber.Ctx) error {
	repo := repository.NewResultRepository(c)

	stats, err := repo.GetStats(c.Context())
	if errors.Is(err, repository.ErrResultsDisabled) {
		return sendError(c, fiber.StatusServiceUnavailable, err.Error())
	}

	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
