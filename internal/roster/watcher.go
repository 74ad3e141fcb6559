package roster

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceWindow is the time to wait before reloading after a
// burst of file events. Sheet syncs and editors write in bursts.
const DefaultDebounceWindow = 200 * time.Millisecond

// Watcher reloads the roster when a local source file changes and
// notifies a callback so derived data (the ranker index) can rebuild.
type Watcher struct {
	loader   *Loader
	store    *Store
	onReload func([]Record)
	debounce time.Duration

	fsw *fsnotify.Watcher
}

// NewWatcher creates a watcher for the loader's local file.
// onReload is invoked after the store has been replaced; it may be nil.
func NewWatcher(loader *Loader, store *Store, onReload func([]Record)) (*Watcher, error) {
	if loader.Path() == "" {
		return nil, fmt.Errorf("roster watcher requires a file source")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	return &Watcher{
		loader:   loader,
		store:    store,
		onReload: onReload,
		debounce: DefaultDebounceWindow,
		fsw:      fsw,
	}, nil
}

// Start begins watching. It returns after the watch is registered;
// reloads happen on a background goroutine until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	// Watch the directory: editors replace files via rename, which
	// drops a watch registered on the file itself.
	dir := filepath.Dir(w.loader.Path())
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go w.run(ctx)
	return nil
}

// Stop releases watcher resources. Safe to call multiple times.
func (w *Watcher) Stop() error {
	return w.fsw.Close()
}

func (w *Watcher) run(ctx context.Context) {
	target := filepath.Clean(w.loader.Path())

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Coalesce event bursts into a single reload.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("roster_watch_error", slog.String("error", err.Error()))

		case <-timerC:
			timer = nil
			timerC = nil
			w.reload(ctx)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	records, err := w.loader.Load(ctx)
	if err != nil {
		// Keep serving the previous roster on a bad write.
		slog.Warn("roster_reload_failed", slog.String("error", err.Error()))
		return
	}

	w.store.Replace(records)
	slog.Info("roster_reloaded", slog.Int("records", w.store.Len()))

	if w.onReload != nil {
		w.onReload(w.store.Records())
	}
}
