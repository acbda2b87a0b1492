package dbmigrate

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("sqlite")
	require.NoError(t, err)
	assert.Equal(t, SQLite, d)

	d, err = DialectFor("postgres")
	require.NoError(t, err)
	assert.Equal(t, "pgx", d.DriverName)

	_, err = DialectFor("memory")
	assert.Error(t, err)
}

func TestRunDB_SQLiteUpAndDown(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open(SQLite.DriverName, filepath.Join(t.TempDir(), "health.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunDB(ctx, "up", db, SQLite))

	tables := []string{"foods", "meals", "sleep_log", "weight_log", "exercise_log", "user_profile", "pantry", "food_routines"}
	for _, table := range tables {
		var name string
		err := db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}

	// повторный up ничего не ломает
	require.NoError(t, RunDB(ctx, "up", db, SQLite))

	require.NoError(t, RunDB(ctx, "down", db, SQLite))
	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'foods'`).Scan(&count))
	assert.Zero(t, count)
}

func TestRun_EmptyDSN(t *testing.T) {
	err := Run(context.Background(), "up", Postgres, "")
	assert.EqualError(t, err, "database URL is empty")
}
