package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tabscope/tabscope/internal/ingest"
	"github.com/tabscope/tabscope/internal/storage"
)

// Execute implements the go-flags Commander interface for ImportCommand.
func (c *ImportCommand) Execute(args []string) error {
	if c.File == "" {
		return fmt.Errorf("--file is required for import command")
	}

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

// executeWithStore runs the import logic against a provided store (used by tests).
func (c *ImportCommand) executeWithStore(store storage.Store) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("reading batch file: %w", err)
	}

	// Accept a bare tab array or a full batch object.
	var batch ingest.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		var tabs []ingest.RawTab
		if err2 := json.Unmarshal(data, &tabs); err2 != nil {
			return fmt.Errorf("parsing batch file: %w", err)
		}
		batch.Tabs = tabs
	}

	if c.Peak != 0 {
		batch.PeakTabCount = c.Peak
	}
	if c.NewTabs != 0 {
		batch.NewTabs = c.NewTabs
	}
	if c.ClosedTabs != 0 {
		batch.ClosedTabs = c.ClosedTabs
	}

	builder := ingest.NewBuilder(store)
	snap, err := builder.Ingest(context.Background(), batch)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"snapshot_id": snap.ID,
			"count":       snap.Count,
			"new_tabs":    snap.NewTabs,
			"closed_tabs": snap.ClosedTabs,
		})
	}

	fmt.Printf("Imported snapshot %d: %d tabs (today %d, week %d, month %d, older %d, unknown %d)\n",
		snap.ID, snap.Count, snap.TodayCount, snap.WeekCount,
		snap.MonthCount, snap.OlderCount, snap.UnknownCount)
	return nil
}
