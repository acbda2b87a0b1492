package main

import (
	"context"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/fdg312/health-assistant/internal/config"
	"github.com/fdg312/health-assistant/internal/dbmigrate"
	"github.com/fdg312/health-assistant/internal/logging"
)

// migrate [up|status|down] применяет схему для STORAGE_DRIVER (sqlite или postgres).
func main() {
	cfg := config.Load()
	logger, err := logging.New(cfg.LogLevel, "console")
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	if len(os.Args) < 2 {
		logger.Fatal("usage: go run ./cmd/migrate [up|status|down]")
	}

	command := os.Args[1]
	switch command {
	case "up", "status", "down":
	default:
		logger.Fatal("unsupported command (allowed: up, status, down)", zap.String("command", command))
	}

	target, err := dbmigrate.TargetFor(cfg)
	if err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}
	if target.Warning != "" {
		logger.Warn("migrate: " + target.Warning)
	}

	logger.Info("migrate: starting",
		zap.String("command", command),
		zap.String("dialect", target.Dialect.Name),
		zap.String("using", target.Source),
	)

	if err := dbmigrate.Run(context.Background(), command, target.Dialect, target.DSN); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}

	logger.Info("migrate: completed", zap.String("command", command))
}
