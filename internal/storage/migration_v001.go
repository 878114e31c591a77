package storage

import "database/sql"

// migrateV001 creates the initial tabscope schema: the snapshot header table,
// per-tab detail rows, and supporting indexes. Every statement uses
// IF NOT EXISTS for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			ts            DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			count         INTEGER NOT NULL DEFAULT 0,
			today_count   INTEGER NOT NULL DEFAULT 0,
			week_count    INTEGER NOT NULL DEFAULT 0,
			month_count   INTEGER NOT NULL DEFAULT 0,
			older_count   INTEGER NOT NULL DEFAULT 0,
			unknown_count INTEGER NOT NULL DEFAULT 0,
			peak_count    INTEGER NOT NULL DEFAULT 0,
			new_tabs      INTEGER NOT NULL DEFAULT 0,
			closed_tabs   INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS tab_details (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			snapshot_id    INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			browser_tab_id INTEGER NOT NULL DEFAULT 0,
			title          TEXT NOT NULL DEFAULT '',
			url            TEXT NOT NULL DEFAULT '',
			domain         TEXT NOT NULL DEFAULT '',
			created_at     DATETIME,
			age_days       INTEGER
		)`,

		`CREATE INDEX IF NOT EXISTS idx_snapshots_ts           ON snapshots(ts)`,
		`CREATE INDEX IF NOT EXISTS idx_tab_details_snapshot   ON tab_details(snapshot_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tab_details_domain     ON tab_details(domain)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
