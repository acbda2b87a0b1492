package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fdg312/health-assistant/internal/config"
)

func serveFrom(h http.Handler, remote, xff string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	req.RemoteAddr = remote
	if xff != "" {
		req.Header.Set("X-Forwarded-For", xff)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRateLimit_SecondRequestReturns429(t *testing.T) {
	cfg := &config.Config{RateLimitRPS: 1, RateLimitBurst: 1}
	handler := RateLimitMiddleware(cfg, okHandler(nil))

	require.Equal(t, http.StatusOK, serveFrom(handler, "1.2.3.4:12345", "").Code)

	rr := serveFrom(handler, "1.2.3.4:12345", "")
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))

	var body errorBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "rate_limited", body.Error.Code)
}

func TestRateLimit_DisabledWhenZero(t *testing.T) {
	cfg := &config.Config{}

	calls := 0
	handler := RateLimitMiddleware(cfg, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 10; i++ {
		require.Equal(t, http.StatusOK, serveFrom(handler, "1.2.3.4:12345", "").Code, "request %d", i)
	}
	assert.Equal(t, 10, calls)
}

func TestRateLimit_DifferentIPsIndependent(t *testing.T) {
	cfg := &config.Config{RateLimitRPS: 1, RateLimitBurst: 1}
	handler := RateLimitMiddleware(cfg, okHandler(nil))

	assert.Equal(t, http.StatusOK, serveFrom(handler, "1.2.3.4:1", "").Code)
	assert.Equal(t, http.StatusOK, serveFrom(handler, "5.6.7.8:1", "").Code)
}

func TestRateLimit_ForwardedFor(t *testing.T) {
	cfg := &config.Config{RateLimitRPS: 1, RateLimitBurst: 1}
	handler := RateLimitMiddleware(cfg, okHandler(nil))

	// один прокси, разные клиенты
	assert.Equal(t, http.StatusOK, serveFrom(handler, "10.0.0.1:1", "9.9.9.9, 10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, serveFrom(handler, "10.0.0.1:1", "8.8.8.8").Code)
	assert.Equal(t, http.StatusTooManyRequests, serveFrom(handler, "10.0.0.1:1", "9.9.9.9").Code)
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		xff    string
		want   string
	}{
		{"RemoteAddr", "1.2.3.4:5678", "", "1.2.3.4"},
		{"NoPort", "1.2.3.4", "", "1.2.3.4"},
		{"FirstForwarded", "10.0.0.1:1", " 9.9.9.9 , 10.0.0.1", "9.9.9.9"},
		{"EmptyForwarded", "1.2.3.4:1", " , 10.0.0.1", "1.2.3.4"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			if tc.xff != "" {
				req.Header.Set("X-Forwarded-For", tc.xff)
			}
			assert.Equal(t, tc.want, extractIP(req))
		})
	}
}

func TestVisitors_SweepsIdle(t *testing.T) {
	v := newVisitors(1, 1)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return now }

	assert.True(t, v.allow("1.1.1.1"))
	assert.False(t, v.allow("1.1.1.1"))

	now = now.Add(visitorTTL + time.Second)
	assert.True(t, v.allow("2.2.2.2"))
	v.mu.Lock()
	_, kept := v.byIP["1.1.1.1"]
	v.mu.Unlock()
	assert.False(t, kept)
}
