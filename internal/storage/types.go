package storage

import "time"

// Snapshot is one point-in-time capture of all open tabs, with aggregate
// age-bucket counts. Immutable once written.
type Snapshot struct {
	ID           int64
	Timestamp    time.Time
	Count        int
	TodayCount   int
	WeekCount    int
	MonthCount   int
	OlderCount   int
	UnknownCount int
	PeakCount    int
	NewTabs      int
	ClosedTabs   int
}

// TabDetail is one browser tab's metadata within a snapshot. CreatedAt and
// AgeDays are nil together: a tab whose creation date could not be resolved
// carries neither and counts toward the unknown bucket.
type TabDetail struct {
	ID           int64
	SnapshotID   int64
	BrowserTabID int
	Title        string
	URL          string
	Domain       string
	CreatedAt    *time.Time
	AgeDays      *int
}

// DayTrend is one calendar day's aggregate over all snapshots taken that
// day. NewTabs and ClosedTabs are only populated by the windowed variant.
type DayTrend struct {
	Date       string // YYYY-MM-DD
	AvgCount   float64
	MinCount   int
	MaxCount   int
	NewTabs    int
	ClosedTabs int
}

// Stats holds aggregate statistics about the tabscope database.
type Stats struct {
	TotalSnapshots int64
	TotalTabs      int64
	OldestSnapshot time.Time
	NewestSnapshot time.Time
	TopDomains     []DomainCount
}

// DomainCount pairs a domain with its tab count in the latest snapshot.
type DomainCount struct {
	Domain string
	Count  int64
}
