package ai

import (
	"math"
	"testing"

	"github.com/lk16/flippy/burst/internal/othello"
	"github.com/stretchr/testify/require"
)

// midgame is reached from the start by playing the middle legal move ten times, black to move.
const midgame = "...........................ooo...xxoox...xoxx...xo.............."

func mustBoard(t *testing.T, s string) othello.Board {
	t.Helper()
	board, err := othello.NewBoardFromString(s)
	require.NoError(t, err)
	return board
}

// plainMinimax is minimax without pruning, used to check that pruning does not change results.
func plainMinimax(board othello.Board, depth int, maximizing bool, root othello.Cell) (int, *othello.Move) {
	mover := root
	if !maximizing {
		mover = root.Opponent()
	}

	moves := othello.LegalMoves(&board, mover)
	if depth == 0 || len(moves) == 0 {
		return Evaluate(&board, root), nil
	}

	var bestMove *othello.Move
	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}

	for i := range moves {
		score, _ := plainMinimax(board.DoMove(mover, moves[i]), depth-1, !maximizing, root)
		if (maximizing && score > best) || (!maximizing && score < best) {
			best = score
			bestMove = &moves[i]
		}
	}

	return best, bestMove
}

func TestEvaluateStart(t *testing.T) {
	board := othello.NewBoardStart()
	require.Equal(t, 0, Evaluate(&board, othello.BLACK))
	require.Equal(t, 0, Evaluate(&board, othello.WHITE))
}

func TestEvaluateCornersAgainstXSquares(t *testing.T) {
	board := mustBoard(t, `
		x......x
		.o....o.
		........
		........
		........
		........
		.o....o.
		x......x`)

	require.Equal(t, 600, Evaluate(&board, othello.BLACK))
	require.Equal(t, -600, Evaluate(&board, othello.WHITE))
}

func TestEvaluateIgnoresEmptySquares(t *testing.T) {
	board := othello.NewBoardEmpty()
	require.Equal(t, 0, Evaluate(&board, othello.BLACK))
}

func TestChooseMoveStart(t *testing.T) {
	board := othello.NewBoardStart()

	move, ok := ChooseMove(board, othello.BLACK)
	require.True(t, ok)
	require.Equal(t, othello.Move{Row: 2, Col: 3}, move)

	move, ok = ChooseMove(board, othello.WHITE)
	require.True(t, ok)
	require.Equal(t, othello.Move{Row: 2, Col: 4}, move)

	after := board.DoMove(othello.BLACK, othello.Move{Row: 2, Col: 3})
	move, ok = ChooseMove(after, othello.WHITE)
	require.True(t, ok)
	require.Equal(t, othello.Move{Row: 4, Col: 2}, move)
}

func TestChooseMoveTakesCorner(t *testing.T) {
	board := mustBoard(t, `
		........
		.o......
		..x.....
		...xo...
		...ox...
		........
		........
		........`)

	move, ok := ChooseMove(board, othello.BLACK)
	require.True(t, ok)
	require.Equal(t, othello.Move{Row: 0, Col: 0}, move)
}

func TestChooseMoveNoMoves(t *testing.T) {
	board := mustBoard(t, `
		xo......
		........
		........
		........
		........
		........
		........
		........`)

	_, ok := ChooseMove(board, othello.WHITE)
	require.False(t, ok)

	empty := othello.NewBoardEmpty()
	_, ok = ChooseMove(empty, othello.BLACK)
	require.False(t, ok)
}

func TestChooseMoveDeterministic(t *testing.T) {
	board := mustBoard(t, midgame)

	first, ok := ChooseMove(board, othello.BLACK)
	require.True(t, ok)

	for range 5 {
		move, ok := ChooseMove(board, othello.BLACK)
		require.True(t, ok)
		require.Equal(t, first, move)
	}
}

func TestChooseMoveDoesNotMutateBoard(t *testing.T) {
	board := mustBoard(t, midgame)
	before := board

	_, ok := ChooseMove(board, othello.BLACK)
	require.True(t, ok)
	require.Equal(t, before, board)
}

func TestChooseMoveIsLegalThroughoutGame(t *testing.T) {
	game := othello.NewGame()
	bot := NewBot(2)

	for !game.IsOver() {
		mover := game.Mover()
		board := game.Board()

		move, ok := bot.ChooseMove(board, mover)
		require.True(t, ok)
		require.Contains(t, othello.LegalMoves(&board, mover), move)

		var err error
		game, err = othello.Reduce(game, othello.PlaceMove{Side: mover, Move: move})
		require.NoError(t, err)
	}
}

func TestPruningMatchesPlainMinimax(t *testing.T) {
	board := mustBoard(t, midgame)

	expected := map[int]othello.Move{
		1: {Row: 2, Col: 5},
		2: {Row: 6, Col: 3},
		3: {Row: 3, Col: 2},
		4: {Row: 6, Col: 3},
	}

	for depth := 1; depth <= 4; depth++ {
		bot := NewBot(depth)

		score, move := bot.minimax(board, depth, math.MinInt, math.MaxInt, true, othello.BLACK)
		plainScore, plainMove := plainMinimax(board, depth, true, othello.BLACK)

		require.Equal(t, plainScore, score, "depth %d", depth)
		require.Equal(t, *plainMove, *move, "depth %d", depth)
		require.Equal(t, expected[depth], *move, "depth %d", depth)
	}
}

func TestBotStats(t *testing.T) {
	bot := NewBot(3)
	require.Equal(t, 3, bot.Depth())

	_, ok := bot.ChooseMove(othello.NewBoardStart(), othello.BLACK)
	require.True(t, ok)

	stats := bot.Stats()
	require.Equal(t, uint64(34), stats.Nodes)
	require.Equal(t, uint64(5), stats.Cutoffs)

	require.Equal(t, 1, NewBot(0).Depth())
}
