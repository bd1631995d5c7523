package models

import (
	"strings"
	"time"

	"github.com/lk16/flippy/burst/internal/match"
	"github.com/lk16/flippy/burst/internal/othello"
)

// GameResponse is the view of a match sent to clients over HTTP and websockets.
type GameResponse struct {
	ID           string `json:"id"`
	HumanSide    string `json:"human_side"`
	ComputerSide string `json:"computer_side"`
	Language     string `json:"language"`

	// Board has one string per row from top to bottom, with 'x' for black, 'o' for white and '.'
	// for empty squares.
	Board      []string `json:"board"`
	Mover      string   `json:"mover"`
	BlackScore int      `json:"black_score"`
	WhiteScore int      `json:"white_score"`
	LegalMoves []string `json:"legal_moves"`

	GameOver bool    `json:"game_over"`
	Winner   *string `json:"winner"`

	BlackSpecialAvailable bool `json:"black_special_available"`
	WhiteSpecialAvailable bool `json:"white_special_available"`
	SpecialArmed          bool `json:"special_armed"`

	LastMove    *string  `json:"last_move"`
	LastFlips   []string `json:"last_flips"`
	LastSpecial bool     `json:"last_special"`

	Moves     []string  `json:"moves"`
	Comment   string    `json:"comment"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGameResponse builds the response for a match.
func NewGameResponse(m *match.Match) GameResponse {
	state := m.Game.State()

	boardString := state.Board.String()
	rows := make([]string, othello.N)
	for i := range rows {
		rows[i] = boardString[i*othello.N : (i+1)*othello.N]
	}

	var winner *string
	if state.GameOver {
		w := state.Winner.String()
		winner = &w
	}

	var lastMove *string
	if state.LastMove != nil {
		field := state.LastMove.String()
		lastMove = &field
	}

	mover := state.Mover.String()
	if state.GameOver {
		mover = othello.EMPTY.String()
	}

	moves := m.Moves
	if moves == nil {
		moves = []string{}
	}

	return GameResponse{
		ID:                    m.ID,
		HumanSide:             m.HumanSide.String(),
		ComputerSide:          m.ComputerSide().String(),
		Language:              string(m.Language),
		Board:                 rows,
		Mover:                 mover,
		BlackScore:            state.BlackScore,
		WhiteScore:            state.WhiteScore,
		LegalMoves:            fields(state.LegalMoves),
		GameOver:              state.GameOver,
		Winner:                winner,
		BlackSpecialAvailable: state.BlackSpecialAvailable,
		WhiteSpecialAvailable: state.WhiteSpecialAvailable,
		SpecialArmed:          state.SpecialArmed,
		LastMove:              lastMove,
		LastFlips:             fields(state.LastFlips),
		LastSpecial:           state.LastSpecial,
		Moves:                 moves,
		Comment:               m.Comment,
		UpdatedAt:             m.UpdatedAt,
	}
}

func fields(moves []othello.Move) []string {
	result := make([]string, len(moves))
	for i, move := range moves {
		result[i] = move.String()
	}
	return result
}

// BoardString joins the rows back into the format accepted by othello.NewBoardFromString.
func (r *GameResponse) BoardString() string {
	return strings.Join(r.Board, "")
}
