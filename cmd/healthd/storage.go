package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/fdg312/health-assistant/internal/config"
	"github.com/fdg312/health-assistant/internal/dbmigrate"
	"github.com/fdg312/health-assistant/internal/storage"
	"github.com/fdg312/health-assistant/internal/storage/memory"
	"github.com/fdg312/health-assistant/internal/storage/postgres"
	"github.com/fdg312/health-assistant/internal/storage/sqlite"
)

// openStorage выбирает бэкенд по STORAGE_DRIVER. При ошибке подключения
// работаем в памяти, чтобы инструменты оставались доступны.
func openStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) storage.Storage {
	log := logger.Named("storage")

	switch cfg.StorageDriver {
	case config.StorageSQLite:
		st, err := sqlite.New(ctx, cfg.SQLitePath)
		if err != nil {
			log.Error("sqlite unavailable, fallback to memory", zap.Error(err))
			return memory.New()
		}
		if cfg.RunMigrationsOnStartup {
			if err := dbmigrate.RunDB(ctx, "up", st.DB(), dbmigrate.SQLite); err != nil {
				log.Error("sqlite migrations failed, fallback to memory", zap.Error(err))
				st.Close()
				return memory.New()
			}
			log.Info("sqlite migrations applied")
		}
		log.Info("using sqlite", zap.String("path", cfg.SQLitePath))
		return st

	case config.StoragePostgres:
		if cfg.RunMigrationsOnStartup {
			target, err := dbmigrate.TargetFor(cfg)
			if err == nil {
				if target.Warning != "" {
					log.Warn("migrations: " + target.Warning)
				}
				log.Info("startup migrations", zap.String("using", target.Source))
				err = dbmigrate.Run(ctx, "up", target.Dialect, target.DSN)
			}
			if err != nil {
				log.Error("postgres migrations failed, fallback to memory", zap.Error(err))
				return memory.New()
			}
		}
		st, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres unavailable, fallback to memory", zap.Error(err))
			return memory.New()
		}
		log.Info("using postgres")
		return st
	}

	log.Info("using in-memory storage")
	return memory.New()
}
