package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tabscope/tabscope/internal/analytics"
	"github.com/tabscope/tabscope/internal/storage"
)

// Execute implements the go-flags Commander interface for SuggestCommand.
func (c *SuggestCommand) Execute(args []string) error {
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

	limit := c.Limit
	if limit <= 0 {
		limit = cfg.Suggest.Limit
	}

	return c.executeWithStore(store, limit)
}

// executeWithStore runs suggestions against a provided store (used by tests).
func (c *SuggestCommand) executeWithStore(store storage.Store, limit int) error {
	suggester := analytics.NewSuggester(store)
	groups, err := suggester.Suggest(context.Background(), limit)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(groups)
	}

	if len(groups) == 0 {
		fmt.Println("No grouping suggestions for the latest snapshot.")
		return nil
	}

	for i, g := range groups {
		fmt.Printf("%d. %s - %s\n", i+1, g.Name, g.Reason)
		for _, tab := range g.Tabs {
			age := "age unknown"
			if tab.AgeDays != nil {
				age = fmt.Sprintf("%dd old", *tab.AgeDays)
			}
			fmt.Printf("     [%d] %s (%s)\n", tab.ID, tab.Title, age)
		}
	}
	return nil
}
