package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/burst/internal/match"
	"github.com/lk16/flippy/burst/internal/services"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository stores running matches. Sessions expire after a period without writes.
type SessionRepository interface {
	Save(ctx context.Context, m *match.Match) error
	Get(ctx context.Context, id string) (*match.Match, error)
	Delete(ctx context.Context, id string) error
}

// NewSessionRepository returns the session store installed by the app.
func NewSessionRepository(c *fiber.Ctx) SessionRepository {
	return c.Locals("sessions").(SessionRepository) //nolint: errcheck
}

// NewSessionRepositoryFromServices returns a Redis backed store if Redis is configured and an
// in-memory store otherwise.
func NewSessionRepositoryFromServices(services *services.Services, ttl time.Duration) SessionRepository {
	if services.Redis != nil {
		return NewRedisSessionRepository(services.Redis, ttl)
	}
	return NewMemorySessionRepository(ttl)
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// RedisSessionRepository keeps sessions as JSON strings with a TTL.
type RedisSessionRepository struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{redis: client, ttl: ttl}
}

func (repo *RedisSessionRepository) Save(ctx context.Context, m *match.Match) error {
	jsonData, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("error marshaling session: %w", err)
	}

	err = repo.redis.Set(ctx, sessionKey(m.ID), jsonData, repo.ttl).Err()
	if err != nil {
		return fmt.Errorf("error storing session: %w", err)
	}

	return nil
}

func (repo *RedisSessionRepository) Get(ctx context.Context, id string) (*match.Match, error) {
	jsonData, err := repo.redis.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("error getting session: %w", err)
	}

	var m match.Match
	if err = json.Unmarshal(jsonData, &m); err != nil {
		return nil, fmt.Errorf("error unmarshaling session: %w", err)
	}

	return &m, nil
}

func (repo *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	deleted, err := repo.redis.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}

	if deleted == 0 {
		return ErrSessionNotFound
	}

	return nil
}

type memorySession struct {
	jsonData  []byte
	expiresAt time.Time
}

// MemorySessionRepository keeps sessions in the server process. It is used when no Redis is
// configured, so sessions are lost on restart and not shared between prefork children.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (repo *MemorySessionRepository) Save(_ context.Context, m *match.Match) error {
	jsonData, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("error marshaling session: %w", err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	now := repo.now()
	for id, session := range repo.sessions {
		if !now.Before(session.expiresAt) {
			delete(repo.sessions, id)
		}
	}

	repo.sessions[m.ID] = memorySession{
		jsonData:  jsonData,
		expiresAt: now.Add(repo.ttl),
	}

	return nil
}

func (repo *MemorySessionRepository) Get(_ context.Context, id string) (*match.Match, error) {
	repo.mu.RLock()
	session, ok := repo.sessions[id]
	repo.mu.RUnlock()

	if !ok || !repo.now().Before(session.expiresAt) {
		return nil, ErrSessionNotFound
	}

	var m match.Match
	if err := json.Unmarshal(session.jsonData, &m); err != nil {
		return nil, fmt.Errorf("error unmarshaling session: %w", err)
	}

	return &m, nil
}

func (repo *MemorySessionRepository) Delete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	session, ok := repo.sessions[id]
	if !ok || !repo.now().Before(session.expiresAt) {
		return ErrSessionNotFound
	}

	delete(repo.sessions, id)
	return nil
}
