package othello

import "fmt"

// bracketed returns the opponent run starting next to m in direction d, if that run is
// terminated by a disc of mover. It returns nil when the direction captures nothing.
func bracketed(b *Board, mover Cell, m Move, d Direction) []Move {
	opponent := mover.Opponent()

	var run []Move
	cur := m.Step(d)
	for cur.InBounds() && b.At(cur) == opponent {
		run = append(run, cur)
		cur = cur.Step(d)
	}

	if len(run) == 0 || !cur.InBounds() || b.At(cur) != mover {
		return nil
	}

	return run
}

// IsLegalMove checks if mover may place a disc on m under the standard bracketing rule.
func IsLegalMove(b *Board, mover Cell, m Move) bool {
	if !m.InBounds() || b.At(m) != EMPTY || !mover.IsPlayer() {
		return false
	}

	for _, d := range Directions {
		if bracketed(b, mover, m, d) != nil {
			return true
		}
	}

	return false
}

// LegalMoves returns all legal moves for mover in row-major order.
func LegalMoves(b *Board, mover Cell) []Move {
	moves := make([]Move, 0, 16)
	for r := range N {
		for c := range N {
			m := Move{Row: r, Col: c}
			if IsLegalMove(b, mover, m) {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

// HasMoves checks if mover has at least one legal move.
func HasMoves(b *Board, mover Cell) bool {
	for r := range N {
		for c := range N {
			if IsLegalMove(b, mover, Move{Row: r, Col: c}) {
				return true
			}
		}
	}
	return false
}

// Flipped returns the discs that a standard move by mover on m would flip, in direction order.
func Flipped(b *Board, mover Cell, m Move) []Move {
	if !m.InBounds() || b.At(m) != EMPTY {
		return nil
	}

	var flips []Move
	for _, d := range Directions {
		flips = append(flips, bracketed(b, mover, m, d)...)
	}
	return flips
}

// BurstFlipped returns the opponent discs in the 3x3 block around m, in row-major order.
func BurstFlipped(b *Board, mover Cell, m Move) []Move {
	opponent := mover.Opponent()

	var flips []Move
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}

			n := Move{Row: m.Row + dr, Col: m.Col + dc}
			if n.InBounds() && b.At(n) == opponent {
				flips = append(flips, n)
			}
		}
	}
	return flips
}

// DoMove returns the board after a standard move by mover on m. An illegal move returns the
// same board, which makes this convenient for search code that already filtered moves.
func (b Board) DoMove(mover Cell, m Move) Board {
	flips := Flipped(&b, mover, m)
	if len(flips) == 0 {
		return b
	}

	b[m.Row][m.Col] = mover
	for _, f := range flips {
		b[f.Row][f.Col] = mover
	}
	return b
}

// ApplyMove places a disc for mover on m and resolves flips in place. A special move uses burst
// resolution instead of bracketing, but the target must still be a legal standard move.
// The board is left untouched when an error is returned.
func ApplyMove(b *Board, mover Cell, m Move, special bool) ([]Move, error) {
	if !mover.IsPlayer() {
		return nil, fmt.Errorf("%w: %s cannot move", ErrInvalidMove, mover)
	}

	if !m.InBounds() {
		return nil, fmt.Errorf("%w: %s is out of bounds", ErrInvalidMove, m)
	}

	if b.At(m) != EMPTY {
		return nil, fmt.Errorf("%w: %s is occupied", ErrInvalidMove, m)
	}

	if !IsLegalMove(b, mover, m) {
		return nil, fmt.Errorf("%w: %s does not flip any discs", ErrInvalidMove, m)
	}

	var flips []Move
	if special {
		flips = BurstFlipped(b, mover, m)
	} else {
		flips = Flipped(b, mover, m)
	}

	b[m.Row][m.Col] = mover
	for _, f := range flips {
		b[f.Row][f.Col] = mover
	}

	return flips, nil
}
