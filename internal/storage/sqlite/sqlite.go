// Package sqlite implements storage.Storage on an embedded SQLite file (modernc.org/sqlite, no cgo).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fdg312/health-assistant/internal/storage"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// fixed-width UTC layout, so TEXT ordering matches time ordering
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// openDB is swapped in tests.
var openDB = sql.Open

// SQLiteStorage — SQLite реализация storage.Storage
type SQLiteStorage struct {
	db       *sql.DB
	foods    *foodsStorage
	meals    *mealsStorage
	sleep    *sleepStorage
	weight   *weightStorage
	exercise *exerciseStorage
	profile  *profileStorage
	pantry   *pantryStorage
	routines *routinesStorage
}

// New открывает (или создаёт) файл базы. Схему применяет dbmigrate.
func New(ctx context.Context, path string) (*SQLiteStorage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}

	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := openDB("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// один writer: SQLite сериализует запись на уровне файла
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStorage{
		db:       db,
		foods:    &foodsStorage{db: db},
		meals:    &mealsStorage{db: db},
		sleep:    &sleepStorage{db: db},
		weight:   &weightStorage{db: db},
		exercise: &exerciseStorage{db: db},
		profile:  &profileStorage{db: db},
		pantry:   &pantryStorage{db: db},
		routines: &routinesStorage{db: db},
	}, nil
}

// DB exposes the connection for migrations.
func (s *SQLiteStorage) DB() *sql.DB { return s.db }

func (s *SQLiteStorage) Foods() storage.FoodsStorage       { return s.foods }
func (s *SQLiteStorage) Meals() storage.MealsStorage       { return s.meals }
func (s *SQLiteStorage) Sleep() storage.SleepStorage       { return s.sleep }
func (s *SQLiteStorage) Weight() storage.WeightStorage     { return s.weight }
func (s *SQLiteStorage) Exercise() storage.ExerciseStorage { return s.exercise }
func (s *SQLiteStorage) Profile() storage.ProfileStorage   { return s.profile }
func (s *SQLiteStorage) Pantry() storage.PantryStorage     { return s.pantry }
func (s *SQLiteStorage) Routines() storage.RoutinesStorage { return s.routines }

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return storage.ErrConflict
		}
	}
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		// строки, записанные не через formatTime
		return time.Parse(time.RFC3339Nano, s)
	}
	return t, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func dateRange(from, to string, args []any) (string, []any) {
	clause := ""
	if from != "" {
		clause += " AND date >= ?"
		args = append(args, from)
	}
	if to != "" {
		clause += " AND date <= ?"
		args = append(args, to)
	}
	return clause, args
}
