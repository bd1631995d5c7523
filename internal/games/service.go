// Package games loads matches from the session store, applies commands and stores them again.
// HTTP handlers and the websocket handler share it.
package games

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/burst/internal/match"
	"github.com/lk16/flippy/burst/internal/othello"
	"github.com/lk16/flippy/burst/internal/repository"
	"github.com/lk16/flippy/burst/internal/sage"
	"github.com/lk16/flippy/burst/internal/services"
)

// Service runs matches stored in a SessionRepository.
type Service struct {
	sessions repository.SessionRepository
	results  *repository.ResultRepository
}

// NewService creates a new Service.
func NewService(sessions repository.SessionRepository, results *repository.ResultRepository) *Service {
	return &Service{sessions: sessions, results: results}
}

// NewServiceFromCtx builds a Service from what the app stored in the request locals.
func NewServiceFromCtx(c *fiber.Ctx) *Service {
	return NewService(repository.NewSessionRepository(c), repository.NewResultRepository(c))
}

// NewServiceFromServices builds a Service for code that runs outside of a request.
func NewServiceFromServices(sessions repository.SessionRepository, services *services.Services) *Service {
	return NewService(sessions, repository.NewResultRepositoryFromServices(services))
}

// Create starts a new match and stores it.
func (s *Service) Create(ctx context.Context, humanSide othello.Cell, lang sage.Language) (*match.Match, error) {
	m, err := match.New(humanSide, lang)
	if err != nil {
		return nil, err
	}

	if err = s.save(ctx, m); err != nil {
		return nil, err
	}

	slog.Info("game created", "game", m.ID, "human_side", humanSide, "language", lang)
	return m, nil
}

// Get loads a match.
func (s *Service) Get(ctx context.Context, id string) (*match.Match, error) {
	return s.sessions.Get(ctx, id)
}

// Delete removes a match.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

// PlaceMove plays a human move and the computer's reply.
func (s *Service) PlaceMove(ctx context.Context, id string, move othello.Move) (*match.Match, error) {
	return s.update(ctx, id, func(m *match.Match) error {
		return m.PlaceMove(move)
	})
}

// ActivateSpecial toggles the human's burst.
func (s *Service) ActivateSpecial(ctx context.Context, id string) (*match.Match, error) {
	return s.update(ctx, id, (*match.Match).ActivateSpecial)
}

// Reset restarts a match.
func (s *Service) Reset(ctx context.Context, id string) (*match.Match, error) {
	return s.update(ctx, id, (*match.Match).Reset)
}

func (s *Service) update(ctx context.Context, id string, apply func(*match.Match) error) (*match.Match, error) {
	m, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = apply(m); err != nil {
		return nil, err
	}

	if err = s.save(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

// save records the result of a match that just ended and stores the match.
func (s *Service) save(ctx context.Context, m *match.Match) error {
	if m.NeedsResult() {
		s.recordResult(ctx, m)
	}

	return s.sessions.Save(ctx, m)
}

func (s *Service) recordResult(ctx context.Context, m *match.Match) {
	winner := m.Game.Winner()
	slog.Info("game over", "game", m.ID, "winner", winner, "moves", len(m.Moves))

	err := s.results.RecordResult(ctx, m)
	if errors.Is(err, repository.ErrResultsDisabled) {
		m.ResultRecorded = true
		return
	}

	if err != nil {
		// Not marked as recorded, so the next write of this match tries again.
		slog.Error("failed to record result", "game", m.ID, "error", err)
		return
	}

	m.ResultRecorded = true
}
