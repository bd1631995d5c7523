package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/burst/internal/games"
	"github.com/lk16/flippy/burst/internal/match"
	"github.com/lk16/flippy/burst/internal/models"
	"github.com/lk16/flippy/burst/internal/othello"
	"github.com/lk16/flippy/burst/internal/repository"
	"github.com/lk16/flippy/burst/internal/sage"
)

// errorStatus maps errors of the game service to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, othello.ErrInvalidMove), errors.Is(err, othello.ErrSpecialUnavailable):
		return fiber.StatusBadRequest
	case errors.Is(err, othello.ErrOutOfTurn), errors.Is(err, othello.ErrGameOver):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func sendError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func sendGame(c *fiber.Ctx, status int, m *match.Match, err error) error {
	if err != nil {
		return sendError(c, errorStatus(err), err.Error())
	}

	return c.Status(status).JSON(models.NewGameResponse(m))
}

// gameID returns the id path parameter and stores it for the access log.
func gameID(c *fiber.Ctx) string {
	id := c.Params("id")
	c.Locals("game_id", id)
	return id
}

// CreateGame starts a new game. The computer opens if the human plays white.
func CreateGame(c *fiber.Ctx) error {
	var req models.NewGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return sendError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	side, err := req.Side()
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	m, err := games.NewServiceFromCtx(c).Create(c.Context(), side, sage.ParseLanguage(req.Language))
	if m != nil {
		c.Locals("game_id", m.ID)
	}

	return sendGame(c, fiber.StatusCreated, m, err)
}

// GetGame returns the state of a game.
func GetGame(c *fiber.Ctx) error {
	m, err := games.NewServiceFromCtx(c).Get(c.Context(), gameID(c))
	return sendGame(c, fiber.StatusOK, m, err)
}

// DeleteGame removes a game.
func DeleteGame(c *fiber.Ctx) error {
	err := games.NewServiceFromCtx(c).Delete(c.Context(), gameID(c))
	if err != nil {
		return sendError(c, errorStatus(err), err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// PlaceMove plays a move for the human, followed by the computer's reply.
func PlaceMove(c *fiber.Ctx) error {
	var req models.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	move, err := req.ToMove()
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	m, err := games.NewServiceFromCtx(c).PlaceMove(c.Context(), gameID(c), move)
	return sendGame(c, fiber.StatusOK, m, err)
}

// ActivateSpecial arms or disarms the human's burst for the next move.
func ActivateSpecial(c *fiber.Ctx) error {
	m, err := games.NewServiceFromCtx(c).ActivateSpecial(c.Context(), gameID(c))
	return sendGame(c, fiber.StatusOK, m, err)
}

// ResetGame restarts a game.
func ResetGame(c *fiber.Ctx) error {
	m, err := games.NewServiceFromCtx(c).Reset(c.Context(), gameID(c))
	return sendGame(c, fiber.StatusOK, m, err)
}
