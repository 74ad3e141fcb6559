package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aryan-pahwani/hermes/internal/roster"
)

// ErrEmptyQuery is returned when the query is empty or whitespace-only.
// Callers treat it as a no-op: no session is created, nothing renders.
var ErrEmptyQuery = errors.New("empty query")

// DefaultMaxResults bounds the rendered result set.
const DefaultMaxResults = 5

// DefaultCreatorPhrases are the query fragments indicating creator intent.
var DefaultCreatorPhrases = []string{"who made", "built this", "creator"}

// DefaultCreatorMarker is the identity substring of the maintainer's record.
const DefaultCreatorMarker = "aryan"

// ResolverConfig configures query resolution.
type ResolverConfig struct {
	// MaxResults bounds the result set (default: 5).
	MaxResults int

	// CreatorPhrases trigger the creator override when present in the
	// query, case-insensitively.
	CreatorPhrases []string

	// CreatorMarker is the name substring identifying the creator record.
	CreatorMarker string
}

// DefaultResolverConfig returns the standard resolver configuration.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		MaxResults:     DefaultMaxResults,
		CreatorPhrases: DefaultCreatorPhrases,
		CreatorMarker:  DefaultCreatorMarker,
	}
}

// Resolver orchestrates a single search request: it runs the ranker,
// applies the creator override, and truncates to the result bound.
type Resolver struct {
	store  *roster.Store
	ranker Ranker
	config ResolverConfig
}

// NewResolver creates a resolver over the given store and ranker.
func NewResolver(store *roster.Store, ranker Ranker, config ResolverConfig) *Resolver {
	if config.MaxResults <= 0 {
		config.MaxResults = DefaultMaxResults
	}
	if config.CreatorMarker == "" {
		config.CreatorMarker = DefaultCreatorMarker
	}
	if len(config.CreatorPhrases) == 0 {
		config.CreatorPhrases = DefaultCreatorPhrases
	}
	return &Resolver{store: store, ranker: ranker, config: config}
}

// Resolve runs one query and returns the bounded, ordered result set.
// An empty result is a valid outcome ("no results"), not an error.
// Ranker failures degrade to the override-only path rather than
// failing the search.
func (r *Resolver) Resolve(ctx context.Context, query string) ([]roster.Record, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	matches, err := r.ranker.Search(ctx, query)
	if err != nil {
		slog.Warn("ranker_failed", slog.String("error", err.Error()))
		matches = nil
	}

	results := make([]roster.Record, 0, len(matches))
	for _, m := range matches {
		results = append(results, m.Record)
	}

	// Creator override: a deterministic insert at rank 0, independent
	// of fuzzy scoring. Nothing is displaced, only prepended.
	if r.hasCreatorIntent(query) {
		if creator, ok := r.store.FindByMarker(r.config.CreatorMarker); ok {
			if !containsName(results, creator.Name) {
				results = append([]roster.Record{creator}, results...)
			}
		}
	}

	if len(results) > r.config.MaxResults {
		results = results[:r.config.MaxResults]
	}

	slog.Debug("query_resolved",
		slog.String("query", query),
		slog.Int("results", len(results)))

	return results, nil
}

// hasCreatorIntent reports whether the query contains a creator phrase.
func (r *Resolver) hasCreatorIntent(query string) bool {
	q := strings.ToLower(query)
	for _, phrase := range r.config.CreatorPhrases {
		if strings.Contains(q, phrase) {
			return true
		}
	}
	return false
}

// containsName checks result membership by identity key.
func containsName(records []roster.Record, name string) bool {
	for _, rec := range records {
		if rec.Name == name {
			return true
		}
	}
	return false
}
