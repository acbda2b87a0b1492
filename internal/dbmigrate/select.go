package dbmigrate

import (
	"errors"

	"github.com/fdg312/health-assistant/internal/config"
)

// Target — куда применять миграции
type Target struct {
	Dialect Dialect
	DSN     string
	Source  string // env var the DSN came from, for logs
	Warning string
}

var ErrNoDatabaseURL = errors.New("no database URL configured (set DATABASE_URL_DIRECT or DATABASE_URL)")

// TargetFor resolves the migration target of the configured storage driver.
// Postgres DDL prefers a direct connection: DIRECT > DATABASE_URL > POOLED (with warning).
func TargetFor(cfg *config.Config) (Target, error) {
	dialect, err := DialectFor(cfg.StorageDriver)
	if err != nil {
		return Target{}, err
	}

	if dialect == SQLite {
		return Target{Dialect: SQLite, DSN: cfg.SQLitePath, Source: "SQLITE_PATH"}, nil
	}

	t := Target{Dialect: Postgres}
	switch {
	case cfg.DatabaseURLDirect != "":
		t.DSN, t.Source = cfg.DatabaseURLDirect, "DATABASE_URL_DIRECT"
	case cfg.DatabaseURLRaw != "":
		t.DSN, t.Source = cfg.DatabaseURLRaw, "DATABASE_URL"
	case cfg.DatabaseURLPooled != "":
		t.DSN, t.Source = cfg.DatabaseURLPooled, "DATABASE_URL_POOLED"
		t.Warning = "using pooled connection for DDL is not recommended; set DATABASE_URL_DIRECT"
	default:
		return Target{}, ErrNoDatabaseURL
	}
	return t, nil
}
