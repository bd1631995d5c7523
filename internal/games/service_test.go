package games

import (
	"context"
	"testing"
	"time"

	"github.com/lk16/flippy/burst/internal/othello"
	"github.com/lk16/flippy/burst/internal/repository"
	"github.com/lk16/flippy/burst/internal/sage"
	"github.com/lk16/flippy/burst/internal/services"
	"github.com/stretchr/testify/require"
)

func newService() *Service {
	return NewServiceFromServices(repository.NewMemorySessionRepository(time.Minute), &services.Services{})
}

func TestServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newService()

	created, err := s.Create(ctx, othello.BLACK, sage.English)
	require.NoError(t, err)

	loaded, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, loaded.ID)

	m, err := s.ActivateSpecial(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, m.Game.SpecialArmed())

	m, err = s.PlaceMove(ctx, created.ID, othello.Move{Row: 2, Col: 3})
	require.NoError(t, err)
	require.Equal(t, "d3*", m.Moves[0])

	loaded, err = s.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, m.Moves, loaded.Moves)
	require.Equal(t, m.Game.Board(), loaded.Game.Board())

	m, err = s.Reset(ctx, created.ID)
	require.NoError(t, err)
	require.Empty(t, m.Moves)
	require.True(t, m.Game.SpecialAvailable(othello.BLACK))

	require.NoError(t, s.Delete(ctx, created.ID))

	_, err = s.Get(ctx, created.ID)
	require.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestServiceRejectedMoveIsNotStored(t *testing.T) {
	ctx := context.Background()
	s := newService()

	created, err := s.Create(ctx, othello.BLACK, sage.English)
	require.NoError(t, err)

	_, err = s.PlaceMove(ctx, created.ID, othello.Move{Row: 0, Col: 0})
	require.ErrorIs(t, err, othello.ErrInvalidMove)

	loaded, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, othello.NewBoardStart(), loaded.Game.Board())
}

func TestServiceUnknownGame(t *testing.T) {
	ctx := context.Background()
	s := newService()

	_, err := s.PlaceMove(ctx, "missing", othello.Move{Row: 2, Col: 3})
	require.ErrorIs(t, err, repository.ErrSessionNotFound)

	_, err = s.Reset(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrSessionNotFound)

	require.ErrorIs(t, s.Delete(ctx, "missing"), repository.ErrSessionNotFound)
}

func TestServiceMarksFinishedGame(t *testing.T) {
	ctx := context.Background()
	s := newService()

	created, err := s.Create(ctx, othello.WHITE, sage.English)
	require.NoError(t, err)

	m := created
	for !m.Game.IsOver() {
		require.False(t, m.ResultRecorded)

		m, err = s.PlaceMove(ctx, created.ID, m.Game.LegalMoves()[0])
		require.NoError(t, err)
	}

	require.True(t, m.ResultRecorded)

	loaded, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, loaded.ResultRecorded)
	require.True(t, loaded.Game.IsOver())
}
