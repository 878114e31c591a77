// Package analytics derives read-only views over persisted snapshots:
// per-day tab count trends and heuristic tab grouping suggestions.
package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/tabscope/tabscope/internal/storage"
)

// RecentWindowDays is the span of the rolling trend window.
const RecentWindowDays = 14

// DaySummary is one calendar day in the full-history trend. Averages are
// rounded to the nearest whole tab for display.
type DaySummary struct {
	Date     string `json:"date"`
	AvgCount int    `json:"avg_count"`
	MinCount int    `json:"min_count"`
	MaxCount int    `json:"max_count"`
}

// WindowDaySummary is one day in the rolling window, adding the summed
// new/closed tab deltas.
type WindowDaySummary struct {
	Date       string `json:"date"`
	AvgCount   int    `json:"avg_count"`
	MinCount   int    `json:"min_count"`
	MaxCount   int    `json:"max_count"`
	NewTabs    int    `json:"new_tabs"`
	ClosedTabs int    `json:"closed_tabs"`
}

// Trends aggregates snapshots into daily time series. Read-only.
type Trends struct {
	store storage.Store
	now   func() time.Time
}

// NewTrends creates a Trends aggregator over the given store.
func NewTrends(store storage.Store) *Trends {
	return &Trends{store: store, now: time.Now}
}

// NewTrendsAt creates a Trends aggregator with a fixed clock, for tests.
func NewTrendsAt(store storage.Store, now func() time.Time) *Trends {
	return &Trends{store: store, now: now}
}

// History returns the full daily trend in ascending date order.
func (t *Trends) History(ctx context.Context) ([]DaySummary, error) {
	rows, err := t.store.DailyTrend(ctx)
	if err != nil {
		return nil, fmt.Errorf("daily trend: %w", err)
	}

	out := make([]DaySummary, len(rows))
	for i, row := range rows {
		out[i] = DaySummary{
			Date:     row.Date,
			AvgCount: int(math.Round(row.AvgCount)),
			MinCount: row.MinCount,
			MaxCount: row.MaxCount,
		}
	}
	return out, nil
}

// RecentWindow returns the last 14 days of daily trend with per-day
// new/closed sums. Days without snapshots are simply absent.
func (t *Trends) RecentWindow(ctx context.Context) ([]WindowDaySummary, error) {
	since := t.now().AddDate(0, 0, -RecentWindowDays)
	rows, err := t.store.WindowTrend(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("window trend: %w", err)
	}

	out := make([]WindowDaySummary, len(rows))
	for i, row := range rows {
		out[i] = WindowDaySummary{
			Date:       row.Date,
			AvgCount:   int(math.Round(row.AvgCount)),
			MinCount:   row.MinCount,
			MaxCount:   row.MaxCount,
			NewTabs:    row.NewTabs,
			ClosedTabs: row.ClosedTabs,
		}
	}
	return out, nil
}
