// Package client talks to the game server over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lk16/flippy/burst/internal/config"
	"github.com/lk16/flippy/burst/internal/models"
)

const (
	clientTimeout = 5 * time.Second
)

// APIError is returned when the server answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	// config contains details on how to connect to the server
	config *config.ClientConfig

	http *http.Client
}

func NewClient(config *config.ClientConfig) *Client {
	return &Client{
		config: config,
		http:   &http.Client{Timeout: clientTimeout},
	}
}

func (c *Client) logRequestAsCurl(req *http.Request, payload []byte) {
	// Do not build string if we're not logging it
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	var builder strings.Builder
	builder.WriteString("curl -X ")
	builder.WriteString(req.Method)
	builder.WriteString(" '")
	builder.WriteString(req.URL.String())
	builder.WriteString("'")

	for key, values := range req.Header {
		for _, value := range values {
			builder.WriteString(" -H '")
			builder.WriteString(strings.ToLower(key))
			builder.WriteString(": ")
			builder.WriteString(value)
			builder.WriteString("'")
		}
	}

	if len(payload) > 0 {
		builder.WriteString(" -d '")
		builder.WriteString(strings.ReplaceAll(strings.TrimSpace(string(payload)), "'", "'\\''"))
		builder.WriteString("'")
	}

	slog.Debug("Sending request", "command", builder.String())
}

// request sends a request and decodes the JSON response into result, unless result is nil.
func (c *Client) request(ctx context.Context, method string, path string, payload any, result any) error {
	var body []byte

	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.ServerURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.config.Token != "" {
		req.Header.Set("X-Token", c.config.Token)
	}

	c.logRequestAsCurl(req, body)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	slog.Debug("Response", "status", resp.Status, "body", string(respBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp models.ErrorResponse
		if err = json.Unmarshal(respBody, &errResp); err != nil || errResp.Error == "" {
			errResp.Error = resp.Status
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	if result == nil {
		return nil
	}

	if err = json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func (c *Client) game(ctx context.Context, method string, path string, payload any) (models.GameResponse, error) {
	var game models.GameResponse
	err := c.request(ctx, method, path, payload, &game)
	return game, err
}

// NewGame starts a new game on the server.
func (c *Client) NewGame(ctx context.Context, req models.NewGameRequest) (models.GameResponse, error) {
	return c.game(ctx, http.MethodPost, "/api/games", req)
}

// GetGame fetches the state of a game.
func (c *Client) GetGame(ctx context.Context, id string) (models.GameResponse, error) {
	return c.game(ctx, http.MethodGet, "/api/games/"+id, nil)
}

// PlaceMove plays a move in field notation such as "d3".
func (c *Client) PlaceMove(ctx context.Context, id string, field string) (models.GameResponse, error) {
	return c.game(ctx, http.MethodPost, "/api/games/"+id+"/moves", models.MoveRequest{Move: field})
}

// ActivateSpecial toggles the burst for the next move.
func (c *Client) ActivateSpecial(ctx context.Context, id string) (models.GameResponse, error) {
	return c.game(ctx, http.MethodPost, "/api/games/"+id+"/special", nil)
}

// Reset restarts a game.
func (c *Client) Reset(ctx context.Context, id string) (models.GameResponse, error) {
	return c.game(ctx, http.MethodPost, "/api/games/"+id+"/reset", nil)
}

// DeleteGame removes a game from the server.
func (c *Client) DeleteGame(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodDelete, "/api/games/"+id, nil, nil)
}

// Stats fetches the result statistics. This needs a token.
func (c *Client) Stats(ctx context.Context) (models.StatsResponse, error) {
	var stats models.StatsResponse
	err := c.request(ctx, http.MethodGet, "/api/stats", nil, &stats)
	return stats, err
}
