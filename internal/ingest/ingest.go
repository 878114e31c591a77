// Package ingest turns a raw batch of browser tabs into one persisted
// snapshot: it classifies every tab's age, folds bucket counts, infers
// new/closed deltas against the previous snapshot, and writes the snapshot
// header plus all tab detail rows atomically.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/tabscope/tabscope/internal/storage"
	"github.com/tabscope/tabscope/internal/tabage"
)

// maxTitleLen bounds stored tab titles, matching the detail column width.
const maxTitleLen = 255

// RawTab is one tab as reported by the browser extension. CreatedAt is an
// optional ISO-8601 string; IsVerified absent counts as verified.
type RawTab struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	CreatedAt  string `json:"createdAt,omitempty"`
	IsVerified *bool  `json:"isVerified,omitempty"`
}

// Batch is one ingestion request: the open tabs plus client-reported
// aggregates, all deltas optional.
type Batch struct {
	Tabs         []RawTab `json:"tabs"`
	PeakTabCount int      `json:"peakTabCount"`
	NewTabs      int      `json:"newTabs"`
	ClosedTabs   int      `json:"closedTabs"`
}

// ValidationError reports a structurally invalid batch, rejected before any
// store interaction.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid batch: " + e.Reason
}

// Builder ingests tab batches into a store. It is stateless; the previous
// snapshot is read fresh from the store on every call.
type Builder struct {
	store storage.Store
	now   func() time.Time
}

// NewBuilder creates a Builder over the given store.
func NewBuilder(store storage.Store) *Builder {
	return &Builder{store: store, now: time.Now}
}

// NewBuilderAt creates a Builder with a fixed clock, for tests.
func NewBuilderAt(store storage.Store, now func() time.Time) *Builder {
	return &Builder{store: store, now: now}
}

// bucketCounts is an immutable per-bucket tally.
type bucketCounts struct {
	today, week, month, older, unknown int
}

// countBuckets folds resolved tabs into bucket counts.
func countBuckets(resolved []tabage.Resolution) bucketCounts {
	var c bucketCounts
	for _, r := range resolved {
		switch r.Bucket {
		case tabage.BucketToday:
			c.today++
		case tabage.BucketWeek:
			c.week++
		case tabage.BucketMonth:
			c.month++
		case tabage.BucketOlder:
			c.older++
		default:
			c.unknown++
		}
	}
	return c
}

// Ingest validates and persists one tab batch, returning the stored
// snapshot. Per-tab date failures degrade to the unknown bucket; only an
// empty batch or a store failure aborts the call.
func (b *Builder) Ingest(ctx context.Context, batch Batch) (*storage.Snapshot, error) {
	if len(batch.Tabs) == 0 {
		return nil, &ValidationError{Reason: "batch contains no tabs"}
	}

	now := b.now()

	resolved := make([]tabage.Resolution, len(batch.Tabs))
	details := make([]storage.TabDetail, len(batch.Tabs))
	for i, tab := range batch.Tabs {
		res := tabage.Resolve(now, parseCreatedAt(tab.CreatedAt), tab.IsVerified, tab.URL)
		resolved[i] = res
		details[i] = storage.TabDetail{
			BrowserTabID: tab.ID,
			Title:        truncate(defaultTitle(tab.Title), maxTitleLen),
			URL:          tab.URL,
			Domain:       tabage.ExtractDomain(tab.URL),
			CreatedAt:    res.CreatedAt,
			AgeDays:      res.AgeDays,
		}
	}

	counts := countBuckets(resolved)

	newTabs, closedTabs := batch.NewTabs, batch.ClosedTabs
	if newTabs == 0 && closedTabs == 0 {
		var err error
		newTabs, closedTabs, err = b.inferDeltas(ctx, len(batch.Tabs))
		if err != nil {
			return nil, err
		}
	}

	snap := &storage.Snapshot{
		Timestamp:    now,
		Count:        len(batch.Tabs),
		TodayCount:   counts.today,
		WeekCount:    counts.week,
		MonthCount:   counts.month,
		OlderCount:   counts.older,
		UnknownCount: counts.unknown,
		PeakCount:    batch.PeakTabCount,
		NewTabs:      newTabs,
		ClosedTabs:   closedTabs,
	}

	if err := b.store.SaveSnapshot(ctx, snap, details); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	return snap, nil
}

// inferDeltas estimates new/closed counts from the total of the previous
// snapshot. With no previous snapshot, or equal totals, both are zero.
func (b *Builder) inferDeltas(ctx context.Context, total int) (newTabs, closedTabs int, err error) {
	prev, err := b.store.LatestSnapshot(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("previous snapshot: %w", err)
	}
	if prev == nil {
		return 0, 0, nil
	}
	switch {
	case total > prev.Count:
		return total - prev.Count, 0, nil
	case total < prev.Count:
		return 0, prev.Count - total, nil
	default:
		return 0, 0, nil
	}
}

// parseCreatedAt parses an extension-reported ISO-8601 timestamp. Anything
// unparsable is treated as absent so URL inference can still run.
func parseCreatedAt(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

func defaultTitle(title string) string {
	if title == "" {
		return "Untitled"
	}
	return title
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
