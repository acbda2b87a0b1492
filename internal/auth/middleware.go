package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/fdg312/health-assistant/internal/config"
	"github.com/fdg312/health-assistant/internal/userctx"
)

// Middleware кладёт subject токена в контекст запроса.
//
//	AUTH_MODE=none          — пропускает всё как есть
//	AUTH_REQUIRED=1         — без валидного токена 401
//	иначе (optional)        — токен проверяется только если передан
//
// /healthz, /metrics и /v1/auth/* всегда публичные.
type Middleware struct {
	tokens   *Tokens
	disabled bool
	required bool
	logger   *zap.Logger
}

func NewMiddleware(cfg *config.Config, tokens *Tokens, logger *zap.Logger) *Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Middleware{
		tokens:   tokens,
		disabled: cfg.AuthMode == "none",
		required: cfg.AuthRequired,
		logger:   logger,
	}
}

func (m *Middleware) Wrap(next http.Handler) http.Handler {
	if m.disabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" && !m.required {
			next.ServeHTTP(w, r)
			return
		}

		sub, err := m.subject(header)
		if err != nil {
			m.logger.Debug("auth rejected",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Bool("token_present", header != ""),
			)
			writeError(w, http.StatusUnauthorized, "unauthorized", "Missing, invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(userctx.WithSubject(r.Context(), sub)))
	})
}

func (m *Middleware) subject(header string) (string, error) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", ErrInvalidToken
	}
	return m.tokens.Verify(token)
}

func isPublicPath(path string) bool {
	return path == "/healthz" || path == "/metrics" || strings.HasPrefix(path, "/v1/auth/")
}
