package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tabscope/tabscope/internal/analytics"
	"github.com/tabscope/tabscope/internal/storage"
)

// Execute implements the go-flags Commander interface for TrendCommand.
func (c *TrendCommand) Execute(args []string) error {
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

// executeWithStore runs the trend report against a provided store (used by tests).
func (c *TrendCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	trends := analytics.NewTrends(store)

	if c.Recent {
		window, err := trends.RecentWindow(ctx)
		if err != nil {
			return err
		}
		if c.globals != nil && c.globals.JSON {
			return json.NewEncoder(os.Stdout).Encode(window)
		}
		if len(window) == 0 {
			fmt.Println("No snapshots in the last 14 days.")
			return nil
		}
		fmt.Printf("%-12s %5s %5s %5s %5s %7s\n", "Date", "Avg", "Min", "Max", "New", "Closed")
		for _, day := range window {
			fmt.Printf("%-12s %5d %5d %5d %5d %7d\n",
				day.Date, day.AvgCount, day.MinCount, day.MaxCount,
				day.NewTabs, day.ClosedTabs)
		}
		return nil
	}

	history, err := trends.History(ctx)
	if err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(history)
	}
	if len(history) == 0 {
		fmt.Println("No snapshots recorded yet.")
		return nil
	}
	fmt.Printf("%-12s %5s %5s %5s\n", "Date", "Avg", "Min", "Max")
	for _, day := range history {
		fmt.Printf("%-12s %5d %5d %5d\n", day.Date, day.AvgCount, day.MinCount, day.MaxCount)
	}
	return nil
}
