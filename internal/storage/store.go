package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Store defines the interface for tabscope data operations. Writes are
// limited to SaveSnapshot; everything else is read-only.
type Store interface {
	SaveSnapshot(ctx context.Context, snap *Snapshot, tabs []TabDetail) error
	LatestSnapshot(ctx context.Context) (*Snapshot, error)
	SnapshotTabs(ctx context.Context, snapshotID int64) ([]TabDetail, error)
	DailyTrend(ctx context.Context) ([]DayTrend, error)
	WindowTrend(ctx context.Context, since time.Time) ([]DayTrend, error)
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	latestSnapshot *sql.Stmt
	snapshotTabs   *sql.Stmt
}

// NewSQLiteStore creates a SQLiteStore from an already-opened and migrated
// database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.latestSnapshot, err = s.db.Prepare(`
		SELECT id, ts, count, today_count, week_count, month_count,
		       older_count, unknown_count, peak_count, new_tabs, closed_tabs
		FROM snapshots ORDER BY ts DESC, id DESC LIMIT 1
	`)
	if err != nil {
		return err
	}

	s.snapshotTabs, err = s.db.Prepare(`
		SELECT id, snapshot_id, browser_tab_id, title, url, domain, created_at, age_days
		FROM tab_details WHERE snapshot_id = ? ORDER BY id
	`)
	if err != nil {
		return err
	}

	return nil
}

// parseTimestamp tries several common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// SaveSnapshot inserts a snapshot header and all its tab detail rows in a
// single transaction. Either every row is written or none are; a failure
// mid-batch rolls the whole snapshot back. The snapshot's ID is populated on
// success, as are the IDs and SnapshotID of the tab details.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap *Snapshot, tabs []TabDetail) error {
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	tsFormatted := snap.Timestamp.UTC().Format(time.RFC3339)
	res, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (ts, count, today_count, week_count, month_count,
		                        older_count, unknown_count, peak_count, new_tabs, closed_tabs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tsFormatted, snap.Count, snap.TodayCount, snap.WeekCount, snap.MonthCount,
		snap.OlderCount, snap.UnknownCount, snap.PeakCount, snap.NewTabs, snap.ClosedTabs,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	snapID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("snapshot id: %w", err)
	}

	for i := range tabs {
		tab := &tabs[i]
		tab.SnapshotID = snapID

		var createdAt interface{}
		if tab.CreatedAt != nil {
			createdAt = tab.CreatedAt.UTC().Format(time.RFC3339)
		}
		var ageDays interface{}
		if tab.AgeDays != nil {
			ageDays = *tab.AgeDays
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO tab_details (snapshot_id, browser_tab_id, title, url, domain, created_at, age_days)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			snapID, tab.BrowserTabID, tab.Title, tab.URL, tab.Domain, createdAt, ageDays,
		)
		if err != nil {
			return fmt.Errorf("insert tab detail: %w", err)
		}
		tab.ID, _ = res.LastInsertId()
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	snap.ID = snapID
	return nil
}

// LatestSnapshot returns the most recent snapshot, or (nil, nil) when the
// store is empty.
func (s *SQLiteStore) LatestSnapshot(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	var tsStr string

	err := s.latestSnapshot.QueryRowContext(ctx).Scan(
		&snap.ID, &tsStr, &snap.Count, &snap.TodayCount, &snap.WeekCount,
		&snap.MonthCount, &snap.OlderCount, &snap.UnknownCount,
		&snap.PeakCount, &snap.NewTabs, &snap.ClosedTabs,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}

	snap.Timestamp, _ = parseTimestamp(tsStr)
	return &snap, nil
}

// SnapshotTabs returns all tab detail rows belonging to a snapshot.
func (s *SQLiteStore) SnapshotTabs(ctx context.Context, snapshotID int64) ([]TabDetail, error) {
	rows, err := s.snapshotTabs.QueryContext(ctx, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("query tab details: %w", err)
	}
	defer rows.Close()

	tabs := []TabDetail{}
	for rows.Next() {
		var tab TabDetail
		var createdAt sql.NullString
		var ageDays sql.NullInt64
		if err := rows.Scan(
			&tab.ID, &tab.SnapshotID, &tab.BrowserTabID, &tab.Title,
			&tab.URL, &tab.Domain, &createdAt, &ageDays,
		); err != nil {
			return nil, fmt.Errorf("scan tab detail: %w", err)
		}
		if createdAt.Valid {
			if t, err := parseTimestamp(createdAt.String); err == nil {
				tab.CreatedAt = &t
			}
		}
		if ageDays.Valid {
			age := int(ageDays.Int64)
			tab.AgeDays = &age
		}
		tabs = append(tabs, tab)
	}

	return tabs, rows.Err()
}

// DailyTrend groups all snapshots by calendar day and returns per-day
// average, minimum, and maximum tab counts in ascending date order.
func (s *SQLiteStore) DailyTrend(ctx context.Context) ([]DayTrend, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date(ts), AVG(count), MIN(count), MAX(count)
		FROM snapshots
		GROUP BY date(ts)
		ORDER BY date(ts) ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query daily trend: %w", err)
	}
	defer rows.Close()

	return scanTrend(rows, false)
}

// WindowTrend is like DailyTrend but restricted to snapshots at or after
// since, and additionally sums the per-day new/closed tab deltas. Days with
// no snapshots are absent from the result.
func (s *SQLiteStore) WindowTrend(ctx context.Context, since time.Time) ([]DayTrend, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date(ts), AVG(count), MIN(count), MAX(count),
		       SUM(new_tabs), SUM(closed_tabs)
		FROM snapshots
		WHERE ts >= ?
		GROUP BY date(ts)
		ORDER BY date(ts) ASC
	`, since.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("query window trend: %w", err)
	}
	defer rows.Close()

	return scanTrend(rows, true)
}

// scanTrend reads trend rows, optionally including the delta sum columns.
func scanTrend(rows *sql.Rows, withDeltas bool) ([]DayTrend, error) {
	trend := []DayTrend{}
	for rows.Next() {
		var day DayTrend
		var err error
		if withDeltas {
			err = rows.Scan(&day.Date, &day.AvgCount, &day.MinCount, &day.MaxCount,
				&day.NewTabs, &day.ClosedTabs)
		} else {
			err = rows.Scan(&day.Date, &day.AvgCount, &day.MinCount, &day.MaxCount)
		}
		if err != nil {
			return nil, fmt.Errorf("scan trend row: %w", err)
		}
		trend = append(trend, day)
	}
	return trend, rows.Err()
}

// GetStats returns aggregate statistics about the database.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshots").Scan(&stats.TotalSnapshots)
	if err != nil {
		return nil, fmt.Errorf("count snapshots: %w", err)
	}

	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tab_details").Scan(&stats.TotalTabs)
	if err != nil {
		return nil, fmt.Errorf("count tab details: %w", err)
	}

	if stats.TotalSnapshots > 0 {
		var oldestStr, newestStr string
		err = s.db.QueryRowContext(ctx, "SELECT MIN(ts), MAX(ts) FROM snapshots").Scan(&oldestStr, &newestStr)
		if err != nil {
			return nil, fmt.Errorf("snapshot time range: %w", err)
		}
		stats.OldestSnapshot, _ = parseTimestamp(oldestStr)
		stats.NewestSnapshot, _ = parseTimestamp(newestStr)
	}

	// Top domains in the most recent snapshot.
	rows, err := s.db.QueryContext(ctx, `
		SELECT domain, COUNT(*) as cnt FROM tab_details
		WHERE snapshot_id = (SELECT id FROM snapshots ORDER BY ts DESC, id DESC LIMIT 1)
		  AND domain != ''
		GROUP BY domain ORDER BY cnt DESC LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("top domains: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dc DomainCount
		if err := rows.Scan(&dc.Domain, &dc.Count); err != nil {
			return nil, err
		}
		stats.TopDomains = append(stats.TopDomains, dc)
	}

	return stats, rows.Err()
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed — that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{s.latestSnapshot, s.snapshotTabs}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
