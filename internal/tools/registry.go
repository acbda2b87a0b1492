// Package tools defines the MCP tools and renders service results as text.
package tools

import (
	"context"
	"errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/fdg312/health-assistant/internal/ledger"
	"github.com/fdg312/health-assistant/internal/nutrition"
	"github.com/fdg312/health-assistant/internal/pantry"
	"github.com/fdg312/health-assistant/internal/profiles"
	"github.com/fdg312/health-assistant/internal/recommend"
	"github.com/fdg312/health-assistant/internal/reports"
	"github.com/fdg312/health-assistant/internal/routines"
	"github.com/fdg312/health-assistant/internal/storage"
	"github.com/fdg312/health-assistant/internal/summary"
	"github.com/fdg312/health-assistant/internal/telemetry"
	"github.com/fdg312/health-assistant/internal/userctx"
)

// Services — сервисы, которые вызывают инструменты
type Services struct {
	Foods     *nutrition.Service
	Ledger    *ledger.Service
	Summary   *summary.Service
	Profiles  *profiles.Service
	Pantry    *pantry.Service
	Routines  *routines.Service
	Recommend *recommend.Engine
	// Reports is optional; without it export_health_report is not registered.
	Reports *reports.Service
}

// Registry builds the tool list and wraps every handler with logging and metrics.
type Registry struct {
	svc     Services
	logger  *zap.Logger
	metrics *telemetry.Metrics
}

func NewRegistry(svc Services, logger *zap.Logger, metrics *telemetry.Metrics) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{svc: svc, logger: logger, metrics: metrics}
}

// handlerFunc returns the text shown to the caller. Returned errors become tool errors.
type handlerFunc func(ctx context.Context, req mcp.CallToolRequest) (string, error)

type tool struct {
	def    mcp.Tool
	handle handlerFunc
}

// Tools returns every tool ready for server.AddTools.
func (r *Registry) Tools() []server.ServerTool {
	var all []tool
	all = append(all, r.foodTools()...)
	all = append(all, r.ledgerTools()...)
	all = append(all, r.summaryTools()...)
	all = append(all, r.profileTools()...)
	all = append(all, r.pantryTools()...)
	all = append(all, r.routineTools()...)
	all = append(all, r.recommendTools()...)
	all = append(all, r.wellnessTools()...)
	if r.svc.Reports != nil {
		all = append(all, r.reportTools()...)
	}

	out := make([]server.ServerTool, 0, len(all))
	for _, t := range all {
		out = append(out, server.ServerTool{
			Tool:    t.def,
			Handler: r.wrap(t.def.Name, t.handle),
		})
	}
	return out
}

// wrap converts handler errors into tool results: caller mistakes are reported
// as warnings, everything else is logged and returned as a generic failure.
func (r *Registry) wrap(name string, h handlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		text, err := h(ctx, req)
		d := time.Since(start)

		fields := []zap.Field{zap.String("tool", name), zap.Duration("duration", d)}
		if sub, ok := userctx.Subject(ctx); ok {
			fields = append(fields, zap.String("sub", sub))
		}

		if err == nil {
			r.metrics.ObserveTool(name, telemetry.OutcomeOK, d)
			r.logger.Info("tool call", append(fields, zap.String("outcome", telemetry.OutcomeOK))...)
			return mcp.NewToolResultText(text), nil
		}

		if msg, ok := describe(err); ok {
			r.metrics.ObserveTool(name, telemetry.OutcomeInvalid, d)
			r.logger.Info("tool call", append(fields, zap.String("outcome", telemetry.OutcomeInvalid), zap.Error(err))...)
			return mcp.NewToolResultError("⚠️ " + msg), nil
		}

		r.metrics.ObserveTool(name, telemetry.OutcomeError, d)
		r.logger.Error("tool call failed", append(fields, zap.String("outcome", telemetry.OutcomeError), zap.Error(err))...)
		return mcp.NewToolResultError("❌ Something went wrong, please try again later."), nil
	}
}

// errArgument — неверный или отсутствующий аргумент
type errArgument struct {
	msg string
}

func (e *errArgument) Error() string { return e.msg }

func argError(msg string) error { return &errArgument{msg: msg} }

// describe returns the caller-facing message for errors caused by the request itself.
func describe(err error) (string, bool) {
	var (
		argErr   *errArgument
		parseErr *nutrition.ParseError
		mealErr  *recommend.UnknownMealTypeError
	)
	switch {
	case errors.As(err, &argErr):
		return argErr.msg, true
	case errors.As(err, &parseErr):
		return parseErr.Error(), true
	case errors.As(err, &mealErr):
		return mealErr.Error(), true
	case errors.Is(err, routines.ErrUnknownBand):
		return routines.ErrUnknownBand.Error() + ", use one of: " + bandList(), true
	}

	if msg, ok := validationMessage(err); ok {
		return msg, true
	}

	for _, known := range []error{
		storage.ErrInvalidDate,
		ledger.ErrInvalidTime,
		nutrition.ErrEmptyName,
		summary.ErrInvalidDays,
		profiles.ErrEmptyPatch,
		recommend.ErrUnknownEffort,
		reports.ErrRangeTooLarge,
	} {
		if errors.Is(err, known) {
			return err.Error(), true
		}
	}
	return "", false
}
