package roster

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_RequiresFileSource(t *testing.T) {
	loader := NewURLLoader("https://example.com/roster.csv")
	_, err := NewWatcher(loader, NewEmptyStore(), nil)
	assert.Error(t, err)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name\nJane Roe\n"), 0o644))

	loader := NewFileLoader(path)
	store := NewEmptyStore()
	require.NoError(t, store.Init(context.Background(), loader))
	require.Equal(t, 1, store.Len())

	var reloads atomic.Int64
	w, err := NewWatcher(loader, store, func(records []Record) {
		reloads.Add(1)
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(path, []byte("Name\nJane Roe\nSam Okafor\n"), 0o644))

	assert.Eventually(t, func() bool {
		return store.Len() == 2 && reloads.Load() >= 1
	}, 5*time.Second, 25*time.Millisecond, "write should trigger a debounced reload")
}

func TestWatcher_KeepsRosterOnBadWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name\nJane Roe\n"), 0o644))

	loader := NewFileLoader(path)
	store := NewEmptyStore()
	require.NoError(t, store.Init(context.Background(), loader))

	w, err := NewWatcher(loader, store, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	// Truncate to nothing: the parse fails and the old roster stays.
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	time.Sleep(3 * DefaultDebounceWindow)
	assert.Equal(t, 1, store.Len())
}
