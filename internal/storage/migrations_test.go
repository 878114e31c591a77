package storage

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_CreateSchema(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	for _, table := range []string{"snapshots", "tab_details", "schema_migrations"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrations_Idempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())
	require.NoError(t, runner.Run())

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count, "migration must be recorded exactly once")
}

func TestMigrations_CascadeDelete(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	res, err := db.Exec("INSERT INTO snapshots (count) VALUES (1)")
	require.NoError(t, err)
	snapID, err := res.LastInsertId()
	require.NoError(t, err)

	_, err = db.Exec(
		"INSERT INTO tab_details (snapshot_id, browser_tab_id, title, url) VALUES (?, 1, 't', 'u')",
		snapID,
	)
	require.NoError(t, err)

	_, err = db.Exec("DELETE FROM snapshots WHERE id = ?", snapID)
	require.NoError(t, err)

	var remaining int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM tab_details").Scan(&remaining))
	assert.Zero(t, remaining, "tab details must be deleted with their snapshot")
}
