package othello

import (
	"fmt"
	"strings"
)

// N is the width and height of the board.
const N = 8

// Cell is the content of a single square.
type Cell uint8

const (
	EMPTY Cell = iota
	BLACK
	WHITE
)

// Opponent returns the other color. EMPTY has no opponent and is returned unchanged.
func (c Cell) Opponent() Cell {
	switch c {
	case BLACK:
		return WHITE
	case WHITE:
		return BLACK
	default:
		return EMPTY
	}
}

// IsPlayer checks if the cell is one of the two colors.
func (c Cell) IsPlayer() bool {
	return c == BLACK || c == WHITE
}

func (c Cell) String() string {
	switch c {
	case BLACK:
		return "black"
	case WHITE:
		return "white"
	case EMPTY:
		return "empty"
	default:
		return fmt.Sprintf("cell(%d)", int(c))
	}
}

// ParseSide converts "black" or "white" to a Cell.
func ParseSide(s string) (Cell, error) {
	switch strings.ToLower(s) {
	case "black", "b":
		return BLACK, nil
	case "white", "w":
		return WHITE, nil
	default:
		return EMPTY, fmt.Errorf("invalid side: %q", s)
	}
}

// Board is the 8x8 grid. It is a value type, so assigning a Board copies all squares.
type Board [N][N]Cell

// NewBoardStart creates a board with the four center discs in the standard starting pattern.
func NewBoardStart() Board {
	var b Board
	mid := N / 2
	b[mid-1][mid-1] = WHITE
	b[mid][mid] = WHITE
	b[mid-1][mid] = BLACK
	b[mid][mid-1] = BLACK
	return b
}

// NewBoardEmpty creates a board without any discs.
func NewBoardEmpty() Board {
	return Board{}
}

// NewBoardFromString parses 64 squares written as 'x' (black), 'o' (white) or '.' (empty).
// Whitespace is ignored so boards can be written as 8 lines of 8 characters.
func NewBoardFromString(s string) (Board, error) {
	var b Board
	index := 0

	for _, r := range s {
		var cell Cell
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		case 'x', 'X', '●':
			cell = BLACK
		case 'o', 'O', '○':
			cell = WHITE
		case '.', '-':
			cell = EMPTY
		default:
			return Board{}, fmt.Errorf("invalid board character %q at square %d", r, index)
		}

		if index >= N*N {
			return Board{}, fmt.Errorf("board string has more than %d squares", N*N)
		}

		b[index/N][index%N] = cell
		index++
	}

	if index != N*N {
		return Board{}, fmt.Errorf("board string must have %d squares, got %d", N*N, index)
	}

	return b, nil
}

// At returns the content of a square. The move must be in bounds.
func (b Board) At(m Move) Cell {
	return b[m.Row][m.Col]
}

// Count returns the number of squares holding the given cell value.
func (b Board) Count(cell Cell) int {
	count := 0
	for r := range N {
		for c := range N {
			if b[r][c] == cell {
				count++
			}
		}
	}
	return count
}

// Counts returns the number of black, white and empty squares.
func (b Board) Counts() (black, white, empty int) {
	for r := range N {
		for c := range N {
			switch b[r][c] {
			case BLACK:
				black++
			case WHITE:
				white++
			default:
				empty++
			}
		}
	}
	return black, white, empty
}

// IsFull checks if no empty squares are left.
func (b Board) IsFull() bool {
	return b.Count(EMPTY) == 0
}

// ASCIIArtLines returns the ascii art lines for the board, marking legal moves for mover with a dot.
// Pass EMPTY as mover to leave out move markers.
func (b Board) ASCIIArtLines(mover Cell) []string {
	legal := make(map[Move]bool)
	if mover.IsPlayer() {
		for _, m := range LegalMoves(&b, mover) {
			legal[m] = true
		}
	}

	lines := make([]string, N+2)
	lines[0] = "+-a-b-c-d-e-f-g-h-+"

	for r := range N {
		line := fmt.Sprintf("%d ", r+1)

		for c := range N {
			switch {
			case b[r][c] == WHITE:
				line += "○ "
			case b[r][c] == BLACK:
				line += "● "
			case legal[Move{Row: r, Col: c}]:
				line += "· "
			default:
				line += "  "
			}
		}

		lines[r+1] = line + "|"
	}

	lines[N+1] = "+-----------------+"
	return lines
}

// Print prints the board to the console. This is used for debugging.
func (b Board) Print(mover Cell) {
	for _, line := range b.ASCIIArtLines(mover) {
		fmt.Println(line)
	}
}

// String returns the compact 64 character representation accepted by NewBoardFromString.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(N * N)

	for r := range N {
		for c := range N {
			switch b[r][c] {
			case BLACK:
				sb.WriteByte('x')
			case WHITE:
				sb.WriteByte('o')
			default:
				sb.WriteByte('.')
			}
		}
	}

	return sb.String()
}
