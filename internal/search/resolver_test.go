package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryan-pahwani/hermes/internal/roster"
)

// stubRanker returns a canned match list, or an error.
type stubRanker struct {
	matches []ScoredMatch
	err     error
}

func (s *stubRanker) Index(ctx context.Context, records []roster.Record) error { return nil }
func (s *stubRanker) Search(ctx context.Context, query string) ([]ScoredMatch, error) {
	return s.matches, s.err
}
func (s *stubRanker) Close() error { return nil }

func matchesFor(names ...string) []ScoredMatch {
	out := make([]ScoredMatch, len(names))
	for i, n := range names {
		out[i] = ScoredMatch{Record: roster.Record{Name: n}, Score: float64(i) * 0.05}
	}
	return out
}

func resolverStore() *roster.Store {
	return roster.NewStore([]roster.Record{
		{Name: "Jane Roe", Title: "Engineer"},
		{Name: "Aryan Pahwani", Title: "Maintainer"},
		{Name: "Sam Okafor", Title: "ML Engineer"},
	})
}

func TestResolver_EmptyQuery(t *testing.T) {
	r := NewResolver(resolverStore(), &stubRanker{}, DefaultResolverConfig())

	_, err := r.Resolve(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestResolver_BoundsResults(t *testing.T) {
	ranker := &stubRanker{matches: matchesFor("a", "b", "c", "d", "e", "f", "g")}
	r := NewResolver(resolverStore(), ranker, DefaultResolverConfig())

	results, err := r.Resolve(context.Background(), "anything")
	require.NoError(t, err)
	assert.Len(t, results, DefaultMaxResults)
	assert.Equal(t, "a", results[0].Name)
}

func TestResolver_NoMatchesIsNotAnError(t *testing.T) {
	r := NewResolver(resolverStore(), &stubRanker{}, DefaultResolverConfig())

	results, err := r.Resolve(context.Background(), "xyzzy-no-match-123")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestResolver_CreatorOverridePrepends(t *testing.T) {
	ranker := &stubRanker{matches: matchesFor("Jane Roe", "Sam Okafor")}
	r := NewResolver(resolverStore(), ranker, DefaultResolverConfig())

	results, err := r.Resolve(context.Background(), "who made this?")
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, "Aryan Pahwani", results[0].Name)
	assert.Equal(t, "Jane Roe", results[1].Name)
	assert.Equal(t, "Sam Okafor", results[2].Name)
}

func TestResolver_CreatorOverrideWithoutMatches(t *testing.T) {
	r := NewResolver(resolverStore(), &stubRanker{}, DefaultResolverConfig())

	results, err := r.Resolve(context.Background(), "tell me about the creator")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Aryan Pahwani", results[0].Name)
}

func TestResolver_CreatorOverrideNoDuplicate(t *testing.T) {
	ranker := &stubRanker{matches: matchesFor("Aryan Pahwani", "Jane Roe")}
	r := NewResolver(resolverStore(), ranker, DefaultResolverConfig())

	results, err := r.Resolve(context.Background(), "who made this")
	require.NoError(t, err)

	var count int
	for _, rec := range results {
		if rec.Name == "Aryan Pahwani" {
			count++
		}
	}
	assert.Equal(t, 1, count, "the creator record must not appear twice")
}

func TestResolver_CreatorOverrideCaseInsensitive(t *testing.T) {
	r := NewResolver(resolverStore(), &stubRanker{}, DefaultResolverConfig())

	results, err := r.Resolve(context.Background(), "WHO MADE this widget")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Aryan Pahwani", results[0].Name)
}

func TestResolver_CreatorOverrideStillBounded(t *testing.T) {
	ranker := &stubRanker{matches: matchesFor("a", "b", "c", "d", "e")}
	r := NewResolver(resolverStore(), ranker, DefaultResolverConfig())

	results, err := r.Resolve(context.Background(), "who made this")
	require.NoError(t, err)
	assert.Len(t, results, DefaultMaxResults)
	assert.Equal(t, "Aryan Pahwani", results[0].Name)
}

func TestResolver_CreatorRecordMissing(t *testing.T) {
	store := roster.NewStore([]roster.Record{{Name: "Jane Roe"}})
	ranker := &stubRanker{matches: matchesFor("Jane Roe")}
	r := NewResolver(store, ranker, DefaultResolverConfig())

	// No record carries the creator marker, so the override is a no-op.
	results, err := r.Resolve(context.Background(), "who made this")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Jane Roe", results[0].Name)
}

func TestResolver_RankerErrorDegrades(t *testing.T) {
	ranker := &stubRanker{err: errors.New("index unavailable")}
	r := NewResolver(resolverStore(), ranker, DefaultResolverConfig())

	results, err := r.Resolve(context.Background(), "jane")
	require.NoError(t, err, "a ranker failure must not fail the search")
	assert.Empty(t, results)

	// The creator override survives a broken ranker.
	results, err = r.Resolve(context.Background(), "who made this")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Aryan Pahwani", results[0].Name)
}
