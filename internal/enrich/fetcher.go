package enrich

import (
	"context"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/aryan-pahwani/hermes/internal/roster"
)

// DefaultCacheSize bounds the enrichment response cache.
const DefaultCacheSize = 128

// Fetcher wraps an Annotator with failure absorption, an LRU response
// cache, and deduplication of concurrent identical requests.
// Fetch never fails: any remote error resolves to an empty mapping so
// the already-rendered result set stays valid, just unannotated.
type Fetcher struct {
	annotator Annotator
	cache     *lru.Cache[string, Annotations]
	group     singleflight.Group
}

// NewFetcher creates a fetcher over the given annotator.
// cacheSize <= 0 uses DefaultCacheSize.
func NewFetcher(annotator Annotator, cacheSize int) *Fetcher {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	// lru.New only errors on non-positive size, which is guarded above.
	cache, _ := lru.New[string, Annotations](cacheSize)

	return &Fetcher{
		annotator: annotator,
		cache:     cache,
	}
}

// Fetch returns annotations for the result set. On any failure it
// logs a warning and returns an empty mapping; the caller merges
// whatever arrived and marks the rest absent.
func (f *Fetcher) Fetch(ctx context.Context, query string, records []roster.Record) Annotations {
	if len(records) == 0 {
		return Annotations{}
	}

	key := cacheKey(query, records)
	if cached, ok := f.cache.Get(key); ok {
		slog.Debug("enrichment_cache_hit", slog.String("query", query))
		return cached
	}

	result, err, _ := f.group.Do(key, func() (any, error) {
		annotations, err := f.annotator.Annotate(ctx, query, records)
		if err != nil {
			return nil, err
		}
		f.cache.Add(key, annotations)
		return annotations, nil
	})
	if err != nil {
		slog.Warn("enrichment_failed",
			slog.String("query", query),
			slog.Int("records", len(records)),
			slog.String("error", err.Error()))
		return Annotations{}
	}

	return result.(Annotations)
}

// cacheKey identifies a fetch by the query plus the exact displayed
// identities, in order. A different result set is a different fetch.
func cacheKey(query string, records []roster.Record) string {
	var b strings.Builder
	b.WriteString(query)
	for _, rec := range records {
		b.WriteByte(0x1f)
		b.WriteString(rec.Name)
	}
	return b.String()
}
