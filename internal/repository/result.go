package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/lk16/flippy/burst/internal/match"
	"github.com/lk16/flippy/burst/internal/models"
	"github.com/lk16/flippy/burst/internal/services"
	"github.com/redis/go-redis/v9"
)

const (
	resultStatsKey          = "result_stats"
	resultStatsLockKey      = "result_stats_lock"
	resultStatsLockTTL      = 10 * time.Second
	resultStatsLockWait     = 5 * time.Second
	resultStatsLockInterval = 50 * time.Millisecond
)

var ErrResultsDisabled = errors.New("result recording is disabled")

var errStatsLockTimeout = errors.New("timed out waiting for result stats lock")

// Increments a field only if the cache was built, otherwise it would hold just this game.
var incrementCachedStats = redis.NewScript(`
	if redis.call("EXISTS", KEYS[1]) == 1 then
		return redis.call("HINCRBY", KEYS[1], ARGV[1], 1)
	end
	return 0
`)

// Deletes the lock only if it is still held by the caller.
var releaseStatsLock = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	end
	return 0
`)

const resultsSchema = `
	CREATE TABLE IF NOT EXISTS game_results (
		id          UUID PRIMARY KEY,
		human_side  TEXT NOT NULL,
		winner      TEXT NOT NULL,
		black_score INTEGER NOT NULL,
		white_score INTEGER NOT NULL,
		moves       TEXT[] NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL
	)
`

// ResultRepository stores the outcome of finished games in Postgres. If Redis is available the
// aggregated counts are cached in a Redis hash.
type ResultRepository struct {
	services *services.Services
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(c *fiber.Ctx) *ResultRepository {
	services := c.Locals("services").(*services.Services) //nolint: errcheck

	return &ResultRepository{
		services: services,
	}
}

func NewResultRepositoryFromServices(services *services.Services) *ResultRepository {
	return &ResultRepository{
		services: services,
	}
}

// Enabled returns whether results can be recorded.
func (repo *ResultRepository) Enabled() bool {
	return repo.services.Postgres != nil
}

// EnsureSchema creates the results table if it does not exist.
func (repo *ResultRepository) EnsureSchema(ctx context.Context) error {
	if !repo.Enabled() {
		return ErrResultsDisabled
	}

	if _, err := repo.services.Postgres.ExecContext(ctx, resultsSchema); err != nil {
		return fmt.Errorf("error creating results table: %w", err)
	}

	return nil
}

func statsField(humanSide, winner string) string {
	return humanSide + ":" + winner
}

// RecordResult stores the outcome of a finished match. Recording the same match twice has no
// effect.
func (repo *ResultRepository) RecordResult(ctx context.Context, m *match.Match) error {
	if !repo.Enabled() {
		return ErrResultsDisabled
	}

	if !m.Game.IsOver() {
		return fmt.Errorf("match %s is not finished", m.ID)
	}

	if repo.services.Redis == nil {
		_, err := repo.insertResult(ctx, m)
		return err
	}

	// Inserting and counting happen under the lock that also guards rebuilding the cache, so a
	// rebuild never sees a game that is counted again afterwards.
	return repo.withStatsLock(ctx, func() error {
		inserted, err := repo.insertResult(ctx, m)
		if err != nil || !inserted {
			return err
		}

		redisConn := repo.services.Redis
		state := m.Game.State()
		field := statsField(m.HumanSide.String(), state.Winner.String())

		if err = incrementCachedStats.Run(ctx, redisConn, []string{resultStatsKey}, field).Err(); err != nil {
			// The next read rebuilds the cache from Postgres.
			redisConn.Del(ctx, resultStatsKey)
			return fmt.Errorf("error updating result stats in Redis: %w", err)
		}

		return nil
	})
}

// insertResult returns whether a new row was written.
func (repo *ResultRepository) insertResult(ctx context.Context, m *match.Match) (bool, error) {
	state := m.Game.State()

	query := `
		INSERT INTO game_results (id, human_side, winner, black_score, white_score, moves, created_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`

	result, err := repo.services.Postgres.ExecContext(ctx, query,
		m.ID,
		m.HumanSide.String(),
		state.Winner.String(),
		state.BlackScore,
		state.WhiteScore,
		pq.Array(m.Moves),
		m.CreatedAt,
		time.Now(),
	)
	if err != nil {
		return false, fmt.Errorf("error inserting result: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading inserted rows: %w", err)
	}

	return inserted > 0, nil
}

// withStatsLock runs fn while holding the result stats lock.
func (repo *ResultRepository) withStatsLock(ctx context.Context, fn func() error) error {
	redisConn := repo.services.Redis
	token := uuid.NewString()
	deadline := time.Now().Add(resultStatsLockWait)

	for {
		acquired, err := redisConn.SetNX(ctx, resultStatsLockKey, token, resultStatsLockTTL).Result()
		if err != nil {
			return fmt.Errorf("error acquiring result stats lock: %w", err)
		}

		if acquired {
			break
		}

		if time.Now().After(deadline) {
			return errStatsLockTimeout
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(resultStatsLockInterval):
		}
	}

	defer func() {
		if err := releaseStatsLock.Run(ctx, redisConn, []string{resultStatsLockKey}, token).Err(); err != nil {
			slog.Warn("could not release result stats lock", "error", err)
		}
	}()

	return fn()
}

func (repo *ResultRepository) loadStats(ctx context.Context) ([]models.ResultStats, error) {
	query := `
		SELECT human_side, winner, count(*) AS count
		FROM game_results
		GROUP BY human_side, winner
	`

	var stats []models.ResultStats
	err := repo.services.Postgres.SelectContext(ctx, &stats, query)
	if err != nil {
		return nil, fmt.Errorf("error loading result stats: %w", err)
	}

	return stats, nil
}

func (repo *ResultRepository) buildCachedStats(ctx context.Context, stats []models.ResultStats) error {
	if len(stats) == 0 {
		return nil
	}

	statsMap := make(map[string]interface{}, len(stats))
	for _, stat := range stats {
		statsMap[statsField(stat.HumanSide, stat.Winner)] = stat.Count
	}

	err := repo.services.Redis.HSet(ctx, resultStatsKey, statsMap).Err()
	if err != nil {
		return fmt.Errorf("error storing result stats in Redis: %w", err)
	}

	return nil
}

func (repo *ResultRepository) cachedStats(ctx context.Context) ([]models.ResultStats, error) {
	cached, err := repo.services.Redis.HGetAll(ctx, resultStatsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("error getting result stats from Redis: %w", err)
	}

	stats := make([]models.ResultStats, 0, len(cached))
	for key, value := range cached {
		humanSide, winner, ok := strings.Cut(key, ":")
		if !ok {
			return nil, fmt.Errorf("invalid result stats key: %s", key)
		}

		count, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("error parsing result stats value: %w", err)
		}

		stats = append(stats, models.ResultStats{HumanSide: humanSide, Winner: winner, Count: count})
	}

	return stats, nil
}

// rebuildStats loads the counts from Postgres and caches them when Redis is available.
func (repo *ResultRepository) rebuildStats(ctx context.Context) ([]models.ResultStats, error) {
	if repo.services.Redis == nil {
		return repo.loadStats(ctx)
	}

	var stats []models.ResultStats

	err := repo.withStatsLock(ctx, func() error {
		var err error
		stats, err = repo.loadStats(ctx)
		if err != nil {
			return err
		}

		if err = repo.buildCachedStats(ctx, stats); err != nil {
			// The numbers from Postgres are still valid.
			slog.Warn("could not cache result stats", "error", err)
		}
		return nil
	})

	if errors.Is(err, errStatsLockTimeout) {
		slog.Warn("result stats lock is busy, skipping cache")
		return repo.loadStats(ctx)
	}

	return stats, err
}

// GetStats returns the number of finished games per human side and winner.
func (repo *ResultRepository) GetStats(ctx context.Context) (models.StatsResponse, error) {
	if !repo.Enabled() {
		return models.StatsResponse{}, ErrResultsDisabled
	}

	var stats []models.ResultStats
	var err error

	if repo.services.Redis != nil {
		stats, err = repo.cachedStats(ctx)
		if err != nil {
			return models.StatsResponse{}, err
		}
	}

	if len(stats) == 0 {
		stats, err = repo.rebuildStats(ctx)
		if err != nil {
			return models.StatsResponse{}, err
		}
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].HumanSide != stats[j].HumanSide {
			return stats[i].HumanSide < stats[j].HumanSide
		}
		return stats[i].Winner < stats[j].Winner
	})

	response := models.StatsResponse{Results: stats}
	for _, stat := range stats {
		response.Games += stat.Count
	}

	if response.Results == nil {
		response.Results = []models.ResultStats{}
	}

	return response, nil
}
