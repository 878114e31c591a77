package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBatchFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportCommand_BatchObject(t *testing.T) {
	store := openTestStore(t)

	cmd := &ImportCommand{
		File: writeBatchFile(t, `{
			"tabs": [
				{"id": 1, "title": "One", "url": "https://a.com/1"},
				{"id": 2, "title": "Two", "url": "https://a.com/2"}
			],
			"peakTabCount": 9
		}`),
	}

	out := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})
	assert.Contains(t, out, "2 tabs")

	snap, err := store.LatestSnapshot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, 2, snap.Count)
	assert.Equal(t, 9, snap.PeakCount)
}

func TestImportCommand_BareTabArray(t *testing.T) {
	store := openTestStore(t)

	cmd := &ImportCommand{
		File: writeBatchFile(t, `[
			{"id": 1, "title": "One", "url": "https://a.com/1"}
		]`),
		Peak: 4,
	}

	captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})

	snap, err := store.LatestSnapshot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, 1, snap.Count)
	assert.Equal(t, 4, snap.PeakCount)
}

func TestImportCommand_EmptyBatchRejected(t *testing.T) {
	store := openTestStore(t)

	cmd := &ImportCommand{File: writeBatchFile(t, `{"tabs": []}`)}
	err := cmd.executeWithStore(store)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid batch"), "got: %v", err)
}

func TestImportCommand_MissingFile(t *testing.T) {
	store := openTestStore(t)

	cmd := &ImportCommand{File: filepath.Join(t.TempDir(), "absent.json")}
	assert.Error(t, cmd.executeWithStore(store))
}
