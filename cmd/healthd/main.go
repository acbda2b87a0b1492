package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/fdg312/health-assistant/internal/blob"
	"github.com/fdg312/health-assistant/internal/config"
	"github.com/fdg312/health-assistant/internal/httpserver"
	"github.com/fdg312/health-assistant/internal/ledger"
	"github.com/fdg312/health-assistant/internal/logging"
	"github.com/fdg312/health-assistant/internal/mcpserver"
	"github.com/fdg312/health-assistant/internal/nutrition"
	"github.com/fdg312/health-assistant/internal/pantry"
	"github.com/fdg312/health-assistant/internal/profiles"
	"github.com/fdg312/health-assistant/internal/recommend"
	"github.com/fdg312/health-assistant/internal/reports"
	"github.com/fdg312/health-assistant/internal/routines"
	"github.com/fdg312/health-assistant/internal/summary"
	"github.com/fdg312/health-assistant/internal/telemetry"
	"github.com/fdg312/health-assistant/internal/tools"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	for _, w := range cfg.Warnings {
		logger.Warn("config: " + w)
	}
	printStartupBanner(logger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("healthd stopped", zap.Error(err))
	}
	logger.Info("healthd stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	st := openStorage(ctx, cfg, logger)
	defer st.Close()

	metrics := telemetry.New()

	// MARK: - Services

	foods := nutrition.NewService(st.Foods(), logger.Named("nutrition"))
	seeded, err := foods.EnsureSeed(ctx)
	if err != nil {
		return err
	}
	metrics.SetSeededFoods(seeded)

	svc := tools.Services{
		Foods:    foods,
		Ledger:   ledger.NewService(st, foods, logger.Named("ledger")),
		Summary:  summary.NewService(st),
		Profiles: profiles.NewService(st.Profile()),
		Pantry:   pantry.NewService(st.Pantry(), foods),
		Routines: routines.NewService(st.Routines(), foods),
	}

	rules := recommend.DefaultRules()
	if cfg.RecommendRulesFile != "" {
		rules, err = recommend.LoadRules(cfg.RecommendRulesFile)
		if err != nil {
			return err
		}
		logger.Info("recommend: rules loaded", zap.String("file", cfg.RecommendRulesFile))
	}
	svc.Recommend = recommend.NewEngine(recommend.Deps{
		Profiles: svc.Profiles,
		Days:     svc.Summary,
		Pantry:   svc.Pantry,
		Routines: svc.Routines,
		Weight:   st.Weight(),
	}, rules, cfg.LowRemainingKcal)

	// отчёты опциональны: без хранилища инструмент просто не регистрируется
	store, keyPrefix, err := blob.NewBlobStore(ctx, cfg.Blob, logger.Named("blob"))
	if err != nil {
		logger.Warn("reports disabled", zap.Error(err))
	} else {
		svc.Reports = reports.NewService(svc.Summary, store, keyPrefix, cfg.ReportsMaxRangeDays, logger.Named("reports"))
	}

	registry := tools.NewRegistry(svc, logger.Named("tools"), metrics)
	mcp := mcpserver.New(registry)

	// MARK: - Transport

	if cfg.Transport == config.TransportHTTP {
		return serveHTTP(ctx, cfg, logger, httpserver.Deps{
			MCP:      mcp,
			Profiles: svc.Profiles,
			Metrics:  metrics,
		})
	}

	logger.Info("stdio transport ready", zap.Int("tools", len(registry.Tools())))
	stdio := server.NewStdioServer(mcp)
	stdio.SetErrorLogger(zap.NewStdLog(logger.Named("stdio")))
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func serveHTTP(ctx context.Context, cfg *config.Config, logger *zap.Logger, deps httpserver.Deps) error {
	srv := httpserver.New(cfg, logger.Named("http"), deps)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// printStartupBanner logs a one-time summary of the resolved configuration.
// No secrets are ever printed, only "set" / "not set".
func printStartupBanner(logger *zap.Logger, cfg *config.Config) {
	fields := []zap.Field{
		zap.String("env", cfg.Env),
		zap.String("version", mcpserver.Version),
		zap.String("transport", cfg.Transport),
		zap.String("storage", cfg.StorageDriver),
		zap.Bool("migrations_on_startup", cfg.RunMigrationsOnStartup),
		zap.String("blob_mode", cfg.Blob.Mode),
		zap.Int("reports_max_range_days", cfg.ReportsMaxRangeDays),
		zap.String("recommend_rules", nonEmptyOr(cfg.RecommendRulesFile, "builtin")),
	}
	switch cfg.StorageDriver {
	case config.StorageSQLite:
		fields = append(fields, zap.String("sqlite_path", cfg.SQLitePath))
	case config.StoragePostgres:
		fields = append(fields, zap.String("database_url", config.SetOrNot(cfg.DatabaseURL)))
	}
	if cfg.Transport == config.TransportHTTP {
		fields = append(fields,
			zap.Int("port", cfg.Port),
			zap.String("auth_mode", cfg.AuthMode),
			zap.Bool("auth_required", cfg.AuthRequired),
			zap.String("jwt_secret", secretStatus(cfg.JWTSecret, "change_me")),
			zap.Int("rate_limit_rps", cfg.RateLimitRPS),
		)
	}
	logger.Info("health assistant starting", fields...)
}

func nonEmptyOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func secretStatus(v, insecureDefault string) string {
	switch v {
	case "":
		return "not set"
	case insecureDefault:
		return "set (DEFAULT, insecure)"
	default:
		return "set (custom)"
	}
}
