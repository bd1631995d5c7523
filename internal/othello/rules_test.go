package othello

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, s string) Board {
	t.Helper()
	board, err := NewBoardFromString(s)
	require.NoError(t, err)
	return board
}

func TestLegalMovesStart(t *testing.T) {
	board := NewBoardStart()

	expected := []Move{{2, 3}, {3, 2}, {4, 5}, {5, 4}}
	require.Equal(t, expected, LegalMoves(&board, BLACK))

	// Calling again without mutation gives the same result.
	require.Equal(t, expected, LegalMoves(&board, BLACK))

	require.Equal(t, []Move{{2, 4}, {3, 5}, {4, 2}, {5, 3}}, LegalMoves(&board, WHITE))
}

func TestIsLegalMove(t *testing.T) {
	board := NewBoardStart()

	tests := []struct {
		name string
		move Move
		want bool
	}{
		{"bracketing move", Move{2, 3}, true},
		{"occupied", Move{3, 3}, false},
		{"corner", Move{0, 0}, false},
		{"adjacent without bracket", Move{2, 2}, false},
		{"out of bounds", Move{8, 0}, false},
		{"negative", Move{-1, 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsLegalMove(&board, BLACK, tt.move))
		})
	}

	require.False(t, IsLegalMove(&board, EMPTY, Move{2, 3}))
}

func TestIsLegalMoveRequiresOpponentBetween(t *testing.T) {
	// The square next to a black disc does not count without an opponent disc in between.
	board := mustBoard(t, `
		........
		........
		........
		...x....
		........
		........
		........
		........`)

	require.False(t, IsLegalMove(&board, BLACK, Move{3, 4}))
	require.Empty(t, LegalMoves(&board, BLACK))
	require.Empty(t, LegalMoves(&board, WHITE))
}

func TestApplyMoveFlipsSingleBracket(t *testing.T) {
	board := mustBoard(t, `
		........
		........
		........
		.ooox...
		........
		........
		........
		........`)

	flips, err := ApplyMove(&board, BLACK, Move{3, 0}, false)
	require.NoError(t, err)
	require.Equal(t, []Move{{3, 1}, {3, 2}, {3, 3}}, flips)

	black, white, empty := board.Counts()
	require.Equal(t, 5, black)
	require.Equal(t, 0, white)
	require.Equal(t, 59, empty)
}

func TestApplyMoveFlipsMultipleDirections(t *testing.T) {
	board := mustBoard(t, `
		x.x.....
		.oo.....
		xo......
		........
		........
		........
		........
		........`)

	// Black on (2,2) brackets (1,1) with (0,0), (1,2) with (0,2) and (2,1) with (2,0).
	flips, err := ApplyMove(&board, BLACK, Move{2, 2}, false)
	require.NoError(t, err)
	require.ElementsMatch(t, []Move{{1, 1}, {1, 2}, {2, 1}}, flips)
	require.Equal(t, 0, board.Count(WHITE))
}

func TestApplyMoveBurst(t *testing.T) {
	board := mustBoard(t, `
		........
		........
		..ooo...
		..o.ox..
		..ooo...
		........
		........
		........`)

	flips, err := ApplyMove(&board, BLACK, Move{3, 3}, true)
	require.NoError(t, err)
	require.Equal(t, []Move{{2, 2}, {2, 3}, {2, 4}, {3, 2}, {3, 4}, {4, 2}, {4, 3}, {4, 4}}, flips)
	require.Equal(t, 0, board.Count(WHITE))
	require.Equal(t, 10, board.Count(BLACK))
}

func TestApplyMoveBurstSkipsOffBoard(t *testing.T) {
	board := mustBoard(t, `
		.ox.....
		oo......
		x.......
		........
		........
		........
		........
		........`)

	flips, err := ApplyMove(&board, BLACK, Move{0, 0}, true)
	require.NoError(t, err)
	require.Equal(t, []Move{{0, 1}, {1, 0}, {1, 1}}, flips)
}

func TestApplyMoveRejected(t *testing.T) {
	tests := []struct {
		name    string
		move    Move
		special bool
	}{
		{"occupied", Move{3, 3}, false},
		{"not bracketing", Move{0, 0}, false},
		{"out of bounds", Move{0, 8}, false},
		{"special on non legal square", Move{0, 0}, true},
		{"special on occupied square", Move{4, 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := NewBoardStart()
			flips, err := ApplyMove(&board, BLACK, tt.move, tt.special)
			require.ErrorIs(t, err, ErrInvalidMove)
			require.Nil(t, flips)
			require.Equal(t, NewBoardStart(), board)
		})
	}
}

func TestBoard_DoMoveDoesNotMutate(t *testing.T) {
	board := NewBoardStart()
	child := board.DoMove(BLACK, Move{2, 3})

	require.Equal(t, NewBoardStart(), board)
	require.Equal(t, BLACK, child[2][3])
	require.Equal(t, BLACK, child[3][3])

	// Illegal moves return the same board.
	require.Equal(t, board, board.DoMove(BLACK, Move{0, 0}))
}

func TestHasMoves(t *testing.T) {
	board := NewBoardStart()
	require.True(t, HasMoves(&board, BLACK))
	require.True(t, HasMoves(&board, WHITE))

	empty := NewBoardEmpty()
	require.False(t, HasMoves(&empty, BLACK))
}

func TestAdvanceTurnPass(t *testing.T) {
	// Black has a move on (0,2), white cannot bracket the corner disc.
	board := mustBoard(t, `
		xo......
		........
		........
		........
		........
		........
		........
		........`)

	turn := AdvanceTurn(&board, BLACK)
	require.Equal(t, BLACK, turn.Mover)
	require.False(t, turn.GameOver)
	require.Equal(t, []Move{{0, 2}}, turn.Legal)

	turn = AdvanceTurn(&board, WHITE)
	require.Equal(t, BLACK, turn.Mover)
	require.False(t, turn.GameOver)
}

func TestAdvanceTurnGameOver(t *testing.T) {
	tests := []struct {
		name   string
		board  string
		winner Winner
	}{
		{
			name:   "draw on full board",
			board:  "xxxxxxxx" + "xxxxxxxx" + "xxxxxxxx" + "xxxxxxxx" + "oooooooo" + "oooooooo" + "oooooooo" + "oooooooo",
			winner: WinnerDraw,
		},
		{
			name:   "black wins 33 to 31",
			board:  "xxxxxxxx" + "xxxxxxxx" + "xxxxxxxx" + "xxxxxxxx" + "xooooooo" + "oooooooo" + "oooooooo" + "oooooooo",
			winner: WinnerBlack,
		},
		{
			name:   "white wins 31 to 33",
			board:  "xxxxxxxx" + "xxxxxxxx" + "xxxxxxxx" + "xxxxxxxo" + "oooooooo" + "oooooooo" + "oooooooo" + "oooooooo",
			winner: WinnerWhite,
		},
		{
			name:   "nobody can move",
			board:  "x......." + "........" + "........" + "........" + "........" + "........" + "........" + ".......o",
			winner: WinnerDraw,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustBoard(t, tt.board)
			turn := AdvanceTurn(&board, WHITE)
			require.True(t, turn.GameOver)
			require.Equal(t, tt.winner, turn.Winner)
			require.Empty(t, turn.Legal)
		})
	}
}
