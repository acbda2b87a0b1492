package dbmigrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// goose keeps base FS and dialect in package globals
var gooseMu sync.Mutex

// Dialect описывает набор миграций и драйвер database/sql для него
type Dialect struct {
	Name       string // goose dialect
	DriverName string // database/sql driver
	Dir        string // directory inside migrationsFS
}

var (
	Postgres = Dialect{Name: "postgres", DriverName: "pgx", Dir: "migrations/postgres"}
	SQLite   = Dialect{Name: "sqlite3", DriverName: "sqlite", Dir: "migrations/sqlite"}
)

// DialectFor maps a STORAGE_DRIVER value to its migration set.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "postgres":
		return Postgres, nil
	case "sqlite":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("no migrations for storage driver %q", driver)
	}
}

// Run opens dsn with the dialect's driver and applies command.
func Run(ctx context.Context, command string, dialect Dialect, dsn string) error {
	if dsn == "" {
		return fmt.Errorf("database URL is empty")
	}

	db, err := sql.Open(dialect.DriverName, dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	return RunDB(ctx, command, db, dialect)
}

// RunDB applies command on an already opened connection.
func RunDB(ctx context.Context, command string, db *sql.DB, dialect Dialect) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect.Name); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, dialect.Dir); err != nil {
		return fmt.Errorf("goose %s failed: %w", command, err)
	}

	return nil
}
