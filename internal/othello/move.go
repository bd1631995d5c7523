package othello

import (
	"fmt"
	"strings"
)

// Move is a 0-indexed square on the board.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Direction is a single step in one of the eight compass directions.
type Direction struct {
	DRow, DCol int
}

// Directions contains the four orthogonal and four diagonal directions.
var Directions = [8]Direction{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// InBounds checks if the move is on the board.
func (m Move) InBounds() bool {
	return m.Row >= 0 && m.Row < N && m.Col >= 0 && m.Col < N
}

// Step returns the square one step away in direction d.
func (m Move) Step(d Direction) Move {
	return Move{Row: m.Row + d.DRow, Col: m.Col + d.DCol}
}

// String returns the field notation of the move, for example "d3" for row 2, column 3.
func (m Move) String() string {
	if !m.InBounds() {
		return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+m.Col, m.Row+1)
}

// ParseMove converts field notation (e.g. "a1", "h8") into a Move.
func ParseMove(field string) (Move, error) {
	if len(field) != 2 {
		return Move{}, fmt.Errorf("invalid field length: %q", field)
	}

	field = strings.ToLower(field)

	if !('a' <= field[0] && field[0] <= 'h' && '1' <= field[1] && field[1] <= '8') {
		return Move{}, fmt.Errorf("invalid field: %q", field)
	}

	return Move{
		Row: int(field[1] - '1'),
		Col: int(field[0] - 'a'),
	}, nil
}
