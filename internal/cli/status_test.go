package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabscope/tabscope/internal/storage"
)

func TestStatusCommand_EmptyDatabase(t *testing.T) {
	store := openTestStore(t)
	cmd := &StatusCommand{version: "test"}

	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})

	assert.Contains(t, out, "Tabscope Status")
	assert.Contains(t, out, "Snapshots:   0")
}

func TestStatusCommand_WithData(t *testing.T) {
	store := openTestStore(t)

	age := 3
	snap := &storage.Snapshot{
		Timestamp:  time.Now(),
		Count:      2,
		WeekCount:  1,
		TodayCount: 1,
		PeakCount:  8,
	}
	tabs := []storage.TabDetail{
		{BrowserTabID: 1, Title: "A", URL: "https://a.com/1", Domain: "a.com", AgeDays: &age},
		{BrowserTabID: 2, Title: "B", URL: "https://a.com/2", Domain: "a.com"},
	}
	require.NoError(t, store.SaveSnapshot(context.Background(), snap, tabs))

	cmd := &StatusCommand{version: "test"}
	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})

	assert.Contains(t, out, "Snapshots:   1")
	assert.Contains(t, out, "Tab rows:    2")
	assert.Contains(t, out, "2 tabs (peak 8)")
	assert.Contains(t, out, "a.com")
}

func TestStatusCommand_JSONOutput(t *testing.T) {
	store := openTestStore(t)
	cmd := &StatusCommand{version: "test", globals: &GlobalFlags{JSON: true}}

	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})

	assert.Contains(t, out, `"total_snapshots": 0`)
	assert.Contains(t, out, `"version": "test"`)
}
