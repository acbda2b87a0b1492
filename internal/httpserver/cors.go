package httpserver

import (
	"net/http"
	"strings"

	"github.com/fdg312/health-assistant/internal/config"
)

// corsPolicy — разрешённые origin и заголовки. MCP streamable HTTP клиенты
// шлют Mcp-Session-Id / Mcp-Protocol-Version и читают Mcp-Session-Id из ответа.
type corsPolicy struct {
	origins     map[string]struct{}
	credentials bool
}

var (
	corsMethods = strings.Join([]string{
		http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}, ",")
	corsRequestHeaders = strings.Join([]string{
		"Authorization", "Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version", "Last-Event-ID",
	}, ",")
)

const corsExposed = "Mcp-Session-Id"

func newCORSPolicy(cfg *config.Config) corsPolicy {
	p := corsPolicy{
		origins:     make(map[string]struct{}, len(cfg.CORSAllowedOrigins)),
		credentials: cfg.CORSAllowCredentials,
	}
	for _, o := range cfg.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			p.origins[o] = struct{}{}
		}
	}
	return p
}

func (p corsPolicy) allows(origin string) bool {
	_, ok := p.origins[origin]
	return origin != "" && ok
}

// apply пишет заголовки для разрешённого origin; preflight дополнительно
// получает методы, заголовки запроса и Max-Age.
func (p corsPolicy) apply(h http.Header, origin string, preflight bool) {
	h.Set("Access-Control-Allow-Origin", origin)
	h.Add("Vary", "Origin")
	h.Set("Access-Control-Expose-Headers", corsExposed)
	if p.credentials {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
	if preflight {
		h.Set("Access-Control-Allow-Methods", corsMethods)
		h.Set("Access-Control-Allow-Headers", corsRequestHeaders)
		h.Set("Access-Control-Max-Age", "600")
	}
}

// CORSMiddleware answers preflights itself and decorates other responses.
// A disallowed origin gets no CORS headers at all, so the browser blocks it.
func CORSMiddleware(cfg *config.Config, next http.Handler) http.Handler {
	policy := newCORSPolicy(cfg)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		preflight := r.Method == http.MethodOptions && origin != ""

		if policy.allows(origin) {
			policy.apply(w.Header(), origin, preflight)
		}
		if preflight {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
