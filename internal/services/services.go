package services

import (
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lk16/flippy/burst/internal/config"
	"github.com/redis/go-redis/v9"
)

// Services contains the connections to the external services. Both are optional: without Redis
// sessions are kept in memory, without Postgres finished games are not recorded.
type Services struct {
	Postgres *sqlx.DB
	Redis    *redis.Client
}

func InitServices(cfg *config.ServerConfig) (*Services, error) {
	services := &Services{}

	if cfg.PostgresURL != "" {
		postgres, err := InitPostgres(cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		services.Postgres = postgres
	} else {
		slog.Warn("FLIPPY_POSTGRES_URL is not set, game results will not be recorded")
	}

	if cfg.RedisURL != "" {
		redis, err := InitRedis(cfg.RedisURL)
		if err != nil {
			services.Close()
			return nil, err
		}
		services.Redis = redis
	} else {
		slog.Warn("FLIPPY_REDIS_URL is not set, sessions are kept in memory")
	}

	return services, nil
}

// Close closes all open connections.
func (s *Services) Close() {
	if s.Postgres != nil {
		if err := s.Postgres.Close(); err != nil {
			slog.Error("error closing postgres", "error", err)
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			slog.Error("error closing redis", "error", err)
		}
	}
}
