package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "LOG_LEVEL", "LOG_FORMAT", "TRANSPORT", "PORT",
		"STORAGE_DRIVER", "SQLITE_PATH", "DATABASE_URL", "DATABASE_URL_POOLED", "DATABASE_URL_DIRECT",
		"RUN_MIGRATIONS_ON_STARTUP", "AUTH_MODE", "AUTH_REQUIRED", "JWT_SECRET",
		"BLOB_MODE", "REPORTS_DIR", "LOW_REMAINING_KCAL", "RECOMMEND_RULES_FILE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, StorageSQLite, cfg.StorageDriver)
	assert.Equal(t, "health.db", cfg.SQLitePath)
	assert.True(t, cfg.RunMigrationsOnStartup)
	assert.Equal(t, "none", cfg.AuthMode)
	assert.False(t, cfg.AuthRequired)
	assert.Equal(t, BlobModeLocal, cfg.Blob.Mode)
	assert.Equal(t, "reports", cfg.Blob.LocalDir)
	assert.Equal(t, 500.0, cfg.LowRemainingKcal)
	assert.Empty(t, cfg.Warnings)
}

func TestLoadStorageDriver(t *testing.T) {
	t.Run("database url implies postgres", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "postgres://localhost/health")

		cfg := Load()
		assert.Equal(t, StoragePostgres, cfg.StorageDriver)
		assert.False(t, cfg.RunMigrationsOnStartup)
	})

	t.Run("pooled url wins", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "postgres://raw")
		t.Setenv("DATABASE_URL_POOLED", "postgres://pooled")

		cfg := Load()
		assert.Equal(t, "postgres://pooled", cfg.DatabaseURL)
	})

	t.Run("postgres without url falls back", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORAGE_DRIVER", "postgres")

		cfg := Load()
		assert.Equal(t, StorageSQLite, cfg.StorageDriver)
		assert.Len(t, cfg.Warnings, 1)
	})

	t.Run("unknown driver warns", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORAGE_DRIVER", "mongo")

		cfg := Load()
		assert.Equal(t, StorageSQLite, cfg.StorageDriver)
		assert.Len(t, cfg.Warnings, 1)
	})

	t.Run("explicit memory", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORAGE_DRIVER", "Memory")

		cfg := Load()
		assert.Equal(t, StorageMemory, cfg.StorageDriver)
	})
}

func TestLoadAuth(t *testing.T) {
	t.Run("required is ignored without auth mode", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("AUTH_REQUIRED", "true")

		assert.False(t, Load().AuthRequired)
	})

	t.Run("dev mode honours required", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("AUTH_MODE", "dev")
		t.Setenv("AUTH_REQUIRED", "1")

		cfg := Load()
		assert.Equal(t, "dev", cfg.AuthMode)
		assert.True(t, cfg.AuthRequired)
	})

	t.Run("default secret warns outside local", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "production")
		t.Setenv("AUTH_MODE", "dev")

		cfg := Load()
		assert.Len(t, cfg.Warnings, 1)
	})
}

func TestLoadLowRemainingKcal(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOW_REMAINING_KCAL", "350")
	assert.Equal(t, 350.0, Load().LowRemainingKcal)

	t.Setenv("LOW_REMAINING_KCAL", "abc")
	assert.Equal(t, 500.0, Load().LowRemainingKcal)
}

func TestParseCORSOrigins(t *testing.T) {
	assert.Equal(t, []string{"https://a.example", "https://b.example"},
		parseCORSOrigins(" https://a.example, ,https://b.example ", "production"))
	assert.Nil(t, parseCORSOrigins("", "production"))
	assert.NotEmpty(t, parseCORSOrigins("", "local"))
}
