package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fdg312/health-assistant/internal/auth"
	"github.com/fdg312/health-assistant/internal/config"
	"github.com/fdg312/health-assistant/internal/mcpserver"
	"github.com/fdg312/health-assistant/internal/profiles"
	"github.com/fdg312/health-assistant/internal/storage/memory"
	"github.com/fdg312/health-assistant/internal/telemetry"
	"github.com/fdg312/health-assistant/internal/tools"
)

func newTestServer(cfg *config.Config) (*Server, *telemetry.Metrics) {
	m := telemetry.New()
	srv := New(cfg, nil, Deps{
		MCP:      mcpserver.New(tools.NewRegistry(tools.Services{}, nil, nil)),
		Profiles: profiles.NewService(memory.New().Profile()),
		Metrics:  m,
	})
	return srv, m
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(&config.Config{Port: 8080, AuthMode: "none"})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestHealthzMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(&config.Config{Port: 8080, AuthMode: "none"})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/healthz", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestProfileRoutes(t *testing.T) {
	srv, _ := newTestServer(&config.Config{AuthMode: "none"})
	h := srv.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/profile", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/v1/profile", strings.NewReader(`{"daily_calorie_goal":2000}`)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/profile", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2000")
}

func TestAuthRequired(t *testing.T) {
	cfg := &config.Config{
		AuthMode:      "dev",
		AuthRequired:  true,
		JWTSecret:     "test-secret-key-for-testing-only",
		JWTIssuer:     "health-assistant-test",
		JWTTTLMinutes: 60,
	}
	srv, _ := newTestServer(cfg)
	h := srv.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/auth/dev", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var tok auth.TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&tok))

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMCPEndpoint(t *testing.T) {
	srv, _ := newTestServer(&config.Config{AuthMode: "none"})

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), mcpserver.Name)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, m := newTestServer(&config.Config{AuthMode: "none"})
	h := srv.Handler()

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	n, err := testutil.GatherAndCount(m.Registry(), "health_assistant_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `health_assistant_http_requests_total{code="200",route="/healthz"} 1`)
}
