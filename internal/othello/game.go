package othello

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Winner is the outcome of a game.
type Winner int

const (
	WinnerNone Winner = iota // game still in progress
	WinnerBlack
	WinnerWhite
	WinnerDraw
)

func (w Winner) String() string {
	switch w {
	case WinnerBlack:
		return "black"
	case WinnerWhite:
		return "white"
	case WinnerDraw:
		return "draw"
	default:
		return "none"
	}
}

// WinnerFromCounts returns the side with more discs, or WinnerDraw on equal counts.
func WinnerFromCounts(black, white int) Winner {
	switch {
	case black > white:
		return WinnerBlack
	case white > black:
		return WinnerWhite
	default:
		return WinnerDraw
	}
}

// Turn is the result of AdvanceTurn.
type Turn struct {
	Mover    Cell
	Legal    []Move
	GameOver bool
	Winner   Winner
}

// AdvanceTurn hands the turn to the opponent of justMoved. If the opponent cannot move, the turn
// returns to justMoved (a pass). If neither side can move or the board is full the game is over.
func AdvanceTurn(b *Board, justMoved Cell) Turn {
	mover := justMoved.Opponent()
	legal := LegalMoves(b, mover)

	if len(legal) == 0 {
		mover = justMoved
		legal = LegalMoves(b, mover)
	}

	if len(legal) == 0 || b.IsFull() {
		black, white, _ := b.Counts()
		return Turn{
			Mover:    mover,
			Legal:    []Move{},
			GameOver: true,
			Winner:   WinnerFromCounts(black, white),
		}
	}

	return Turn{Mover: mover, Legal: legal}
}

// GameState is the snapshot handed to the presentation layer.
type GameState struct {
	Board                 Board
	Mover                 Cell
	BlackScore            int
	WhiteScore            int
	GameOver              bool
	Winner                Winner
	BlackSpecialAvailable bool
	WhiteSpecialAvailable bool

	// Presentation hints, these carry no behavioral contract.
	SpecialArmed bool
	LegalMoves   []Move
	LastMove     *Move
	LastFlips    []Move
	LastSpecial  bool
}

// Game is an Othello game with the burst variant. Game values are immutable: Reduce returns a
// new Game and leaves its input untouched.
type Game struct {
	board          Board
	mover          Cell
	blackSpecial   bool
	whiteSpecial   bool
	specialArmed   bool
	gameOver       bool
	winner         Winner
	legal          []Move
	lastMove       *Move
	lastFlips      []Move
	lastWasSpecial bool
}

// NewGame creates a game in the starting position with black to move.
func NewGame() Game {
	return NewGameWithStart(NewBoardStart(), BLACK)
}

// NewGameWithStart creates a game from a custom position. If mover cannot move the turn passes,
// and if nobody can move the game starts out finished. This is mostly useful for tests.
func NewGameWithStart(board Board, mover Cell) Game {
	g := Game{
		board:        board,
		blackSpecial: true,
		whiteSpecial: true,
	}
	g.applyTurn(AdvanceTurn(&g.board, mover.Opponent()))
	return g
}

func (g *Game) applyTurn(turn Turn) {
	g.mover = turn.Mover
	g.legal = turn.Legal
	g.gameOver = turn.GameOver
	g.winner = turn.Winner
}

// Board returns a copy of the board.
func (g Game) Board() Board {
	return g.board
}

// Mover returns the side to move.
func (g Game) Mover() Cell {
	return g.mover
}

// LegalMoves returns the legal moves of the side to move.
func (g Game) LegalMoves() []Move {
	return slices.Clone(g.legal)
}

// IsOver checks if the game has ended.
func (g Game) IsOver() bool {
	return g.gameOver
}

// Winner returns the winner, or WinnerNone while the game is in progress.
func (g Game) Winner() Winner {
	return g.winner
}

// SpecialAvailable checks if side still has its burst move.
func (g Game) SpecialAvailable(side Cell) bool {
	switch side {
	case BLACK:
		return g.blackSpecial
	case WHITE:
		return g.whiteSpecial
	default:
		return false
	}
}

// SpecialArmed checks if the next placement of the mover is a burst.
func (g Game) SpecialArmed() bool {
	return g.specialArmed
}

func (g *Game) consumeSpecial(side Cell) {
	switch side {
	case BLACK:
		g.blackSpecial = false
	case WHITE:
		g.whiteSpecial = false
	}
}

// State returns the snapshot of the game.
func (g Game) State() GameState {
	black, white, _ := g.board.Counts()

	state := GameState{
		Board:                 g.board,
		Mover:                 g.mover,
		BlackScore:            black,
		WhiteScore:            white,
		GameOver:              g.gameOver,
		Winner:                g.winner,
		BlackSpecialAvailable: g.blackSpecial,
		WhiteSpecialAvailable: g.whiteSpecial,
		SpecialArmed:          g.specialArmed,
		LegalMoves:            slices.Clone(g.legal),
		LastFlips:             slices.Clone(g.lastFlips),
		LastSpecial:           g.lastWasSpecial,
	}

	if g.lastMove != nil {
		lastMove := *g.lastMove
		state.LastMove = &lastMove
	}

	return state
}

// Command is an input to Reduce.
type Command interface {
	apply(g Game) (Game, error)
}

// PlaceMove places a disc for Side. It is a burst if the special was armed before.
type PlaceMove struct {
	Side Cell
	Move Move
}

// ActivateSpecial toggles whether the next placement of Side is a burst.
type ActivateSpecial struct {
	Side Cell
}

// Reset restarts the game from the starting position.
type Reset struct{}

// Reduce applies cmd to g and returns the resulting game. On error g is returned unchanged.
func Reduce(g Game, cmd Command) (Game, error) {
	next, err := cmd.apply(g)
	if err != nil {
		return g, err
	}
	return next, nil
}

func (g Game) checkTurn(side Cell) error {
	if g.gameOver {
		return ErrGameOver
	}

	if side != g.mover {
		return fmt.Errorf("%w: %s to move, got %s", ErrOutOfTurn, g.mover, side)
	}

	return nil
}

func (p PlaceMove) apply(g Game) (Game, error) {
	if err := g.checkTurn(p.Side); err != nil {
		return g, err
	}

	special := g.specialArmed
	if special && !g.SpecialAvailable(p.Side) {
		return g, fmt.Errorf("%w: %s already used it", ErrSpecialUnavailable, p.Side)
	}

	// g is a copy, so the board can be modified in place.
	flips, err := ApplyMove(&g.board, p.Side, p.Move, special)
	if err != nil {
		return g, err
	}

	if special {
		g.consumeSpecial(p.Side)
	}

	move := p.Move
	g.specialArmed = false
	g.lastMove = &move
	g.lastFlips = flips
	g.lastWasSpecial = special

	g.applyTurn(AdvanceTurn(&g.board, p.Side))
	return g, nil
}

func (a ActivateSpecial) apply(g Game) (Game, error) {
	if err := g.checkTurn(a.Side); err != nil {
		return g, err
	}

	if !g.SpecialAvailable(a.Side) {
		return g, fmt.Errorf("%w: %s already used it", ErrSpecialUnavailable, a.Side)
	}

	g.specialArmed = !g.specialArmed
	return g, nil
}

func (Reset) apply(Game) (Game, error) {
	return NewGame(), nil
}

type gameJSON struct {
	Board          string `json:"board"`
	Mover          Cell   `json:"mover"`
	BlackSpecial   bool   `json:"black_special"`
	WhiteSpecial   bool   `json:"white_special"`
	SpecialArmed   bool   `json:"special_armed"`
	LastMove       *Move  `json:"last_move,omitempty"`
	LastFlips      []Move `json:"last_flips,omitempty"`
	LastWasSpecial bool   `json:"last_was_special,omitempty"`
}

// MarshalJSON encodes the game so it can be stored between requests.
func (g Game) MarshalJSON() ([]byte, error) {
	return json.Marshal(gameJSON{
		Board:          g.board.String(),
		Mover:          g.mover,
		BlackSpecial:   g.blackSpecial,
		WhiteSpecial:   g.whiteSpecial,
		SpecialArmed:   g.specialArmed,
		LastMove:       g.lastMove,
		LastFlips:      g.lastFlips,
		LastWasSpecial: g.lastWasSpecial,
	})
}

// UnmarshalJSON decodes a game written by MarshalJSON. Legal moves and the outcome are recomputed
// from the board.
func (g *Game) UnmarshalJSON(data []byte) error {
	var raw gameJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	board, err := NewBoardFromString(raw.Board)
	if err != nil {
		return fmt.Errorf("invalid game board: %w", err)
	}

	if !raw.Mover.IsPlayer() {
		return fmt.Errorf("invalid game mover: %s", raw.Mover)
	}

	*g = NewGameWithStart(board, raw.Mover)
	g.blackSpecial = raw.BlackSpecial
	g.whiteSpecial = raw.WhiteSpecial
	g.specialArmed = raw.SpecialArmed && !g.gameOver
	g.lastMove = raw.LastMove
	g.lastFlips = raw.LastFlips
	g.lastWasSpecial = raw.LastWasSpecial
	return nil
}

// MarshalText encodes a side as "black", "white" or "empty".
func (c Cell) MarshalText() ([]byte, error) {
	if c > WHITE {
		return nil, fmt.Errorf("invalid cell: %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a side written by MarshalText.
func (c *Cell) UnmarshalText(text []byte) error {
	if string(text) == "empty" {
		*c = EMPTY
		return nil
	}

	side, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*c = side
	return nil
}
