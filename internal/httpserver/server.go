package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/fdg312/health-assistant/internal/auth"
	"github.com/fdg312/health-assistant/internal/config"
	"github.com/fdg312/health-assistant/internal/profiles"
	"github.com/fdg312/health-assistant/internal/telemetry"
)

// Deps — всё, что сервер отдаёт наружу. Nil-поля просто не регистрируются.
type Deps struct {
	MCP      *server.MCPServer
	Profiles *profiles.Service
	Metrics  *telemetry.Metrics
}

// Server представляет HTTP сервер
type Server struct {
	config         *config.Config
	logger         *zap.Logger
	mux            *http.ServeMux
	metrics        *telemetry.Metrics
	authMiddleware *auth.Middleware
	httpServer     *http.Server
}

// New создаёт новый HTTP сервер
func New(cfg *config.Config, logger *zap.Logger, deps Deps) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		config:  cfg,
		logger:  logger,
		mux:     http.NewServeMux(),
		metrics: deps.Metrics,
	}

	tokens := auth.NewTokens(cfg)
	s.authMiddleware = auth.NewMiddleware(cfg, tokens, logger)

	s.routes(deps, auth.DevHandler(tokens, logger))
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes(deps Deps, devAuth http.Handler) {
	// Health check (no auth required)
	s.handle("/healthz", http.HandlerFunc(s.handleHealthz))

	if s.metrics != nil {
		s.mux.Handle("/metrics", s.metrics.Handler())
	}

	// Auth API (no auth required)
	s.handle("/v1/auth/dev", devAuth)

	if deps.Profiles != nil {
		h := profiles.NewHandler(deps.Profiles)
		s.handle("/v1/profile", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPatch:
				h.HandlePatch(w, r)
			default:
				h.HandleGet(w, r)
			}
		}))
	}

	if deps.MCP != nil {
		s.handle("/mcp", server.NewStreamableHTTPServer(deps.MCP))
	}
}

// handle регистрирует маршрут с подсчётом запросов.
func (s *Server) handle(route string, h http.Handler) {
	if s.metrics != nil {
		h = s.metrics.Middleware(route, h)
	}
	s.mux.Handle(route, h)
}

// Handler builds the middleware chain (outermost first): CORS → Rate Limit → Auth → Router.
func (s *Server) Handler() http.Handler {
	handler := s.authMiddleware.Wrap(s.mux)
	handler = RateLimitMiddleware(s.config, handler)
	return CORSMiddleware(s.config, handler)
}

// handleHealthz возвращает статус сервера
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Start запускает HTTP сервер и блокируется до Shutdown.
func (s *Server) Start() error {
	addr := s.httpServer.Addr
	s.logger.Info("http server listening",
		zap.String("addr", addr),
		zap.String("mcp", fmt.Sprintf("http://localhost%s/mcp", addr)),
		zap.String("healthz", fmt.Sprintf("http://localhost%s/healthz", addr)),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return nil
}

// Shutdown дожидается активных запросов или истечения ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}
