package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tabscope/tabscope/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version        string            `json:"version"`
	TotalSnapshots int64             `json:"total_snapshots"`
	TotalTabs      int64             `json:"total_tabs"`
	OldestSnapshot string            `json:"oldest_snapshot,omitempty"`
	NewestSnapshot string            `json:"newest_snapshot,omitempty"`
	LatestCount    int               `json:"latest_count"`
	LatestPeak     int               `json:"latest_peak"`
	TopDomains     []domainCountJSON `json:"top_domains"`
}

type domainCountJSON struct {
	Domain string `json:"domain"`
	Count  int64  `json:"count"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs status against a provided store (used by tests).
func (c *StatusCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()

	stats, err := store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	latest, err := store.LatestSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("latest snapshot: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return c.printJSON(stats, latest)
	}
	return c.printHuman(stats, latest)
}

func (c *StatusCommand) printJSON(stats *storage.Stats, latest *storage.Snapshot) error {
	out := statusJSON{
		Version:        c.version,
		TotalSnapshots: stats.TotalSnapshots,
		TotalTabs:      stats.TotalTabs,
		TopDomains:     []domainCountJSON{},
	}
	if stats.TotalSnapshots > 0 {
		out.OldestSnapshot = stats.OldestSnapshot.Format("2006-01-02")
		out.NewestSnapshot = stats.NewestSnapshot.Format("2006-01-02")
	}
	if latest != nil {
		out.LatestCount = latest.Count
		out.LatestPeak = latest.PeakCount
	}
	for _, dc := range stats.TopDomains {
		out.TopDomains = append(out.TopDomains, domainCountJSON{Domain: dc.Domain, Count: dc.Count})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (c *StatusCommand) printHuman(stats *storage.Stats, latest *storage.Snapshot) error {
	fmt.Println("Tabscope Status")
	fmt.Println("===============")
	fmt.Printf("Version:     %s\n", c.version)
	fmt.Printf("Snapshots:   %s\n", formatNumber(stats.TotalSnapshots))
	fmt.Printf("Tab rows:    %s\n", formatNumber(stats.TotalTabs))

	if stats.TotalSnapshots > 0 {
		fmt.Printf("Oldest:      %s\n", stats.OldestSnapshot.Local().Format("2006-01-02"))
		fmt.Printf("Newest:      %s\n", stats.NewestSnapshot.Local().Format("2006-01-02"))
	}

	if latest != nil {
		fmt.Printf("Latest:      %d tabs (peak %d)\n", latest.Count, latest.PeakCount)
		fmt.Printf("Buckets:     today %d / week %d / month %d / older %d / unknown %d\n",
			latest.TodayCount, latest.WeekCount, latest.MonthCount,
			latest.OlderCount, latest.UnknownCount)
	}

	if len(stats.TopDomains) > 0 {
		fmt.Println("Top domains:")
		for _, dc := range stats.TopDomains {
			fmt.Printf("  %-30s %s\n", dc.Domain, formatNumber(dc.Count))
		}
	}

	return nil
}
