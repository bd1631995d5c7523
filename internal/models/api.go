package models

import (
	"errors"
	"strings"

	"github.com/lk16/flippy/burst/internal/othello"
)

// NewGameRequest is the payload for starting a game.
type NewGameRequest struct {
	HumanSide string `json:"human_side"`
	Language  string `json:"language"`
}

// Side returns the side requested by the human. Black is used when none is given.
func (r *NewGameRequest) Side() (othello.Cell, error) {
	if r.HumanSide == "" {
		return othello.BLACK, nil
	}
	return othello.ParseSide(r.HumanSide)
}

// MoveRequest is the payload for placing a disc. Either Move is set in field notation such as
// "d3", or both Row and Col are set.
type MoveRequest struct {
	Move string `json:"move,omitempty"`
	Row  *int   `json:"row,omitempty"`
	Col  *int   `json:"col,omitempty"`
}

var ErrMissingMove = errors.New("either move or row and col are required")

// ToMove converts the request to a move. Bounds are checked by the engine.
func (r *MoveRequest) ToMove() (othello.Move, error) {
	if r.Move != "" {
		return othello.ParseMove(strings.TrimSpace(r.Move))
	}

	if r.Row == nil || r.Col == nil {
		return othello.Move{}, ErrMissingMove
	}

	return othello.Move{Row: *r.Row, Col: *r.Col}, nil
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ResultStats counts finished games by the side of the human and the winner.
type ResultStats struct {
	HumanSide string `json:"human_side" db:"human_side"`
	Winner    string `json:"winner"     db:"winner"`
	Count     int    `json:"count"      db:"count"`
}

// StatsResponse is returned by the stats endpoint.
type StatsResponse struct {
	Games   int           `json:"games"`
	Results []ResultStats `json:"results"`
}
