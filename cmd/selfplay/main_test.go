package main

import (
	"math/rand/v2"
	"testing"

	"github.com/lk16/flippy/burst/internal/ai"
	"github.com/lk16/flippy/burst/internal/othello"
	"github.com/stretchr/testify/require"
)

func TestPlayGame(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))

	state, record := playGame(ai.NewBot(1), ai.NewBot(2), rng, 4, false)

	require.True(t, state.GameOver)
	require.NotEqual(t, othello.WinnerNone, state.Winner)
	require.NotEmpty(t, record)
	require.LessOrEqual(t, len(record), 60)

	black, white, empty := state.Board.Counts()
	require.Equal(t, 64, black+white+empty)
	require.Equal(t, black, state.BlackScore)
	require.Equal(t, white, state.WhiteScore)
}

func TestPlayGameDeterministic(t *testing.T) {
	_, first := playGame(ai.NewBot(2), ai.NewBot(2), rand.New(rand.NewPCG(3, 3)), 6, false)
	_, second := playGame(ai.NewBot(2), ai.NewBot(2), rand.New(rand.NewPCG(3, 3)), 6, false)

	require.Equal(t, first, second)
}
