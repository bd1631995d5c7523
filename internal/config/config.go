package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultSessionTTL = 30 * time.Minute

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost        string
	ServerPort        string
	RedisURL          string
	PostgresURL       string
	BasicAuthUsername string
	BasicAuthPassword string
	Token             string
	Prefork           bool
	SessionTTL        time.Duration
}

// LoadServerConfig loads configuration from environment variables. Values from a .env file in the
// working directory are used for variables that are not set yet.
func LoadServerConfig() *ServerConfig {
	LoadDotEnv()

	return &ServerConfig{
		ServerHost:        getEnvMust("FLIPPY_SERVER_HOST"),
		ServerPort:        getEnvMust("FLIPPY_SERVER_PORT"),
		RedisURL:          os.Getenv("FLIPPY_REDIS_URL"),
		PostgresURL:       os.Getenv("FLIPPY_POSTGRES_URL"),
		BasicAuthUsername: getEnvMust("FLIPPY_BASIC_AUTH_USER"),
		BasicAuthPassword: getEnvMust("FLIPPY_BASIC_AUTH_PASS"),
		Token:             getEnvMust("FLIPPY_TOKEN"),
		Prefork:           getEnvMustBool("FLIPPY_PREFORK"),
		SessionTTL:        getEnvDuration("FLIPPY_SESSION_TTL", defaultSessionTTL),
	}
}

// ClientConfig holds the settings of the terminal client.
type ClientConfig struct {
	ServerURL string
	Token     string
}

// LoadClientConfig loads the client configuration. The token is only needed for statistics.
func LoadClientConfig() *ClientConfig {
	LoadDotEnv()

	return &ClientConfig{
		ServerURL: strings.TrimSuffix(getEnvMust("FLIPPY_SERVER_URL"), "/"),
		Token:     os.Getenv("FLIPPY_TOKEN"),
	}
}

// LoadDotEnv loads the .env file if there is one.
func LoadDotEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Cannot load .env file", "error", err)
		os.Exit(1)
	}
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvMustBool(key string) bool {
	value := getEnvMust(key)

	if value != "true" && value != "false" {
		slog.Error("Cannot load environment variable, it must be \"true\" or \"false\"", "key", key, "value", value)
		os.Exit(1)
	}

	return value == "true"
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		slog.Error("Cannot load environment variable, it must be a positive duration", "key", key, "value", value)
		os.Exit(1)
	}

	return duration
}
