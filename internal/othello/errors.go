package othello

import "errors"

var (
	// ErrInvalidMove is returned for occupied, out of bounds or non-bracketing squares.
	ErrInvalidMove = errors.New("invalid move")

	// ErrSpecialUnavailable is returned when a side already used its burst move.
	ErrSpecialUnavailable = errors.New("special move unavailable")

	// ErrOutOfTurn is returned when a side acts while it is not its turn.
	ErrOutOfTurn = errors.New("out of turn")

	// ErrGameOver is returned for any move command after the game has ended.
	ErrGameOver = errors.New("game is over")
)
