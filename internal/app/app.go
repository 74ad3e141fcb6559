// Package app wires the search pipeline: roster store, fuzzy ranker,
// query resolver, enrichment fetcher and merger, and the view layer.
// Ranked results always render synchronously before the enrichment
// fetch is dispatched; enrichment merges back through the session
// generation guard.
package app

import (
	"context"
	"log/slog"

	"github.com/aryan-pahwani/hermes/internal/enrich"
	"github.com/aryan-pahwani/hermes/internal/roster"
	"github.com/aryan-pahwani/hermes/internal/search"
	"github.com/aryan-pahwani/hermes/internal/session"
	"github.com/aryan-pahwani/hermes/internal/ui"
)

// StatusNoResults is the status line rendered for an empty result set.
const StatusNoResults = "No results found in the archives."

// App orchestrates search sessions over the shared store and ranker.
type App struct {
	store    *roster.Store
	ranker   search.Ranker
	resolver *search.Resolver
	fetcher  *enrich.Fetcher
	sessions *session.Manager
	view     ui.View
	merger   *enrich.Merger
}

// New creates the orchestrator. The view is attached separately via
// SetView because interactive views need the app's Search as their
// dispatch callback.
func New(
	store *roster.Store,
	ranker search.Ranker,
	resolver *search.Resolver,
	fetcher *enrich.Fetcher,
	sessions *session.Manager,
) *App {
	return &App{
		store:    store,
		ranker:   ranker,
		resolver: resolver,
		fetcher:  fetcher,
		sessions: sessions,
	}
}

// SetView attaches the view layer and binds the enrichment merger to it.
func (a *App) SetView(view ui.View) {
	a.view = view
	a.merger = enrich.NewMerger(a.sessions, view)
}

// Store exposes the roster store, mainly for watcher wiring.
func (a *App) Store() *roster.Store {
	return a.store
}

// Load performs the one-shot roster load and builds the ranker index.
// A load failure here is the only failure that prevents sessions from
// starting; afterwards every query degrades to "no results".
func (a *App) Load(ctx context.Context, loader *roster.Loader) error {
	if err := a.store.Init(ctx, loader); err != nil {
		return err
	}
	return a.ranker.Index(ctx, a.store.Records())
}

// Reindex rebuilds the ranker over a replaced record sequence.
// Used as the roster watcher's reload callback.
func (a *App) Reindex(ctx context.Context, records []roster.Record) {
	if err := a.ranker.Index(ctx, records); err != nil {
		slog.Warn("reindex_failed", slog.String("error", err.Error()))
	}
}

// Search runs one query end to end. The ranked result set renders
// before this method dispatches enrichment; the returned channel
// closes when enrichment for this session has settled (immediately
// for no-ops and empty result sets).
//
// An empty or whitespace-only query is a silent no-op: no session is
// created and the display is untouched.
func (a *App) Search(ctx context.Context, query string) <-chan struct{} {
	done := make(chan struct{})

	results, err := a.resolver.Resolve(ctx, query)
	if err != nil {
		// Only the empty-query rejection reaches here.
		close(done)
		return done
	}

	sess := a.sessions.Begin(query, results)

	if len(results) == 0 {
		a.view.RenderStatus(StatusNoResults)
		close(done)
		return done
	}

	a.view.RenderResults(results)

	go func() {
		defer close(done)
		annotations := a.fetcher.Fetch(ctx, sess.Query(), sess.Results())
		if a.merger.Merge(sess.Generation(), annotations) {
			a.view.SettleAnnotations()
		}
	}()

	return done
}
