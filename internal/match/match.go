// Package match runs a game between a human and the computer. It forwards human commands to the
// engine and answers with computer moves until the human is to move again.
package match

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/flippy/burst/internal/ai"
	"github.com/lk16/flippy/burst/internal/othello"
	"github.com/lk16/flippy/burst/internal/sage"
)

// Match is a single human versus computer game session.
type Match struct {
	ID        string        `json:"id"`
	HumanSide othello.Cell  `json:"human_side"`
	Language  sage.Language `json:"language"`
	Game      othello.Game  `json:"game"`

	// Moves is the game record in field notation, bursts are suffixed with '*'.
	Moves []string `json:"moves"`

	// Comment is the commentary on the last human move.
	Comment string `json:"comment"`

	// ResultRecorded is set once the outcome of a finished game was handled by the result store.
	ResultRecorded bool `json:"result_recorded"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a match. When the human plays white, the computer opens immediately.
func New(humanSide othello.Cell, lang sage.Language) (*Match, error) {
	if !humanSide.IsPlayer() {
		return nil, fmt.Errorf("invalid human side: %s", humanSide)
	}

	now := time.Now()
	m := &Match{
		ID:        uuid.NewString(),
		HumanSide: humanSide,
		Language:  lang,
		Game:      othello.NewGame(),
		Moves:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.playComputer()
	return m, nil
}

// ComputerSide returns the side played by the search.
func (m *Match) ComputerSide() othello.Cell {
	return m.HumanSide.Opponent()
}

// PlaceMove plays a human move, followed by the computer's reply.
func (m *Match) PlaceMove(move othello.Move) error {
	return m.Apply(othello.PlaceMove{Side: m.HumanSide, Move: move})
}

// ActivateSpecial toggles the burst for the next human placement.
func (m *Match) ActivateSpecial() error {
	return m.Apply(othello.ActivateSpecial{Side: m.HumanSide})
}

// Reset restarts the game. The computer opens if the human plays white.
func (m *Match) Reset() error {
	return m.Apply(othello.Reset{})
}

// Apply forwards cmd to the engine. Nothing changes if the engine rejects the command.
func (m *Match) Apply(cmd othello.Command) error {
	next, err := othello.Reduce(m.Game, cmd)
	if err != nil {
		return err
	}

	m.Game = next
	m.UpdatedAt = time.Now()

	switch cmd.(type) {
	case othello.PlaceMove:
		m.recordLastMove()
		m.Comment = m.comment()
	case othello.Reset:
		m.Moves = []string{}
		m.Comment = ""
		m.ResultRecorded = false
	}

	m.playComputer()
	return nil
}

// playComputer plays computer moves for as long as it is the computer's turn. The computer never
// uses its burst.
func (m *Match) playComputer() {
	side := m.ComputerSide()

	for !m.Game.IsOver() && m.Game.Mover() == side {
		move, ok := ai.ChooseMove(m.Game.Board(), side)
		if !ok {
			// The engine only hands the turn to a side that can move.
			slog.Error("computer has no moves on its turn", "match", m.ID)
			return
		}

		next, err := othello.Reduce(m.Game, othello.PlaceMove{Side: side, Move: move})
		if err != nil {
			slog.Error("computer move rejected", "match", m.ID, "move", move.String(), "error", err)
			return
		}

		m.Game = next
		m.recordLastMove()
	}
}

func (m *Match) recordLastMove() {
	state := m.Game.State()
	if state.LastMove == nil {
		return
	}

	field := state.LastMove.String()
	if state.LastSpecial {
		field += "*"
	}
	m.Moves = append(m.Moves, field)
}

func (m *Match) comment() string {
	state := m.Game.State()
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	return sage.Comment(sage.Input{
		BlackScore:  state.BlackScore,
		WhiteScore:  state.WhiteScore,
		LastMover:   m.HumanSide,
		SpecialUsed: state.LastSpecial,
	}, m.Language, rng)
}

// NeedsResult checks if the game is over and its outcome was not stored yet.
func (m *Match) NeedsResult() bool {
	return m.Game.IsOver() && !m.ResultRecorded
}
