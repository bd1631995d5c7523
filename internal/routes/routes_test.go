package routes_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/burst/internal"
	"github.com/lk16/flippy/burst/internal/config"
	"github.com/lk16/flippy/burst/internal/repository"
	"github.com/lk16/flippy/burst/internal/routes/version"
	"github.com/lk16/flippy/burst/internal/services"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	cfg := &config.ServerConfig{SessionTTL: time.Minute}
	return internal.BuildApp(cfg, &services.Services{}, repository.NewMemorySessionRepository(cfg.SessionTTL))
}

func get(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)

	resp, err := app.Test(req)
	require.NoError(t, err)

	t.Cleanup(func() {
		resp.Body.Close()
	})

	return resp
}

func TestRootEndpoint(t *testing.T) {
	resp := get(t, newTestApp(), "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "/api/games", body["games"])
	require.Equal(t, "/ws", body["websocket"])
}

func TestVersionEndpoint(t *testing.T) {
	resp := get(t, newTestApp(), "/version")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body version.VersionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Commit)
	require.Equal(t, version.Version, body)
}

func TestWebsocketRequiresUpgrade(t *testing.T) {
	resp := get(t, newTestApp(), "/ws")
	require.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	resp := get(t, newTestApp(), "/book")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
