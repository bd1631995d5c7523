package ai

import (
	"log/slog"
	"math"
	"time"

	"github.com/lk16/flippy/burst/internal/othello"
)

// DefaultDepth is the number of plies searched by ChooseMove.
const DefaultDepth = 3

// ChooseMove picks a move for side with a search of DefaultDepth plies.
// It returns false if side has no legal moves; deciding on a pass is up to the caller.
func ChooseMove(board othello.Board, side othello.Cell) (othello.Move, bool) {
	return NewBot(DefaultDepth).ChooseMove(board, side)
}

// Stats contains counters of the last search.
type Stats struct {
	Nodes   uint64
	Cutoffs uint64
	Elapsed time.Duration
}

// Bot searches othello positions with minimax and alpha-beta pruning.
type Bot struct {
	depth     int
	startTime time.Time
	stats     Stats
}

// NewBot creates a new bot. Depths below one are raised to one.
func NewBot(depth int) *Bot {
	return &Bot{depth: max(depth, 1)}
}

// Depth returns the search depth in plies.
func (b *Bot) Depth() int {
	return b.depth
}

// Stats returns the counters of the last call to ChooseMove.
func (b *Bot) Stats() Stats {
	return b.stats
}

// ChooseMove searches board for side and returns the best move found.
// The board is passed by value, so the caller's board is never touched.
func (b *Bot) ChooseMove(board othello.Board, side othello.Cell) (othello.Move, bool) {
	b.startTime = time.Now()
	b.stats = Stats{}

	if !othello.HasMoves(&board, side) {
		return othello.Move{}, false
	}

	score, move := b.minimax(board, b.depth, math.MinInt, math.MaxInt, true, side)

	b.stats.Elapsed = time.Since(b.startTime)
	b.logStats(side, move, score)

	return *move, true
}

// minimax returns the score of board from the perspective of root and the best move for the side
// to move at this node. The move is nil when the node is evaluated statically.
//
// A node without legal moves is evaluated statically, without checking whether the game actually
// ended or the side to move just has to pass.
func (b *Bot) minimax(
	board othello.Board,
	depth int,
	alpha int,
	beta int,
	maximizing bool,
	root othello.Cell,
) (int, *othello.Move) {
	b.stats.Nodes++

	mover := root
	if !maximizing {
		mover = root.Opponent()
	}

	moves := othello.LegalMoves(&board, mover)

	if depth == 0 || len(moves) == 0 {
		return Evaluate(&board, root), nil
	}

	bestMove := &moves[0]

	if maximizing {
		best := math.MinInt

		for i := range moves {
			child := board.DoMove(mover, moves[i])
			score, _ := b.minimax(child, depth-1, alpha, beta, false, root)

			if score > best {
				best = score
				bestMove = &moves[i]
			}

			alpha = max(alpha, score)
			if beta <= alpha {
				b.stats.Cutoffs++
				break
			}
		}

		return best, bestMove
	}

	best := math.MaxInt

	for i := range moves {
		child := board.DoMove(mover, moves[i])
		score, _ := b.minimax(child, depth-1, alpha, beta, true, root)

		if score < best {
			best = score
			bestMove = &moves[i]
		}

		beta = min(beta, score)
		if beta <= alpha {
			b.stats.Cutoffs++
			break
		}
	}

	return best, bestMove
}

func (b *Bot) logStats(side othello.Cell, move *othello.Move, score int) {
	elapsedSeconds := b.stats.Elapsed.Seconds()

	nodesPerSecond := int64(0)
	if elapsedSeconds > 0.000001 {
		nodesPerSecond = int64(float64(b.stats.Nodes) / elapsedSeconds)
	}

	slog.Debug("search done",
		"side", side,
		"move", move.String(),
		"score", score,
		"depth", b.depth,
		"nodes", b.stats.Nodes,
		"cutoffs", b.stats.Cutoffs,
		"elapsed", b.stats.Elapsed,
		"nodes_per_second", nodesPerSecond,
	)
}
