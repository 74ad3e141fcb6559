package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aryan-pahwani/hermes/internal/roster"
)

func testScorer() scorer {
	cfg := DefaultRankerConfig()
	return scorer{weights: cfg.Weights, threshold: cfg.Threshold}
}

func TestScorer_ExactNameMatch(t *testing.T) {
	rec := roster.Record{
		Name:            "Jane Roe",
		Title:           "Platform Engineer",
		CurrentProject:  "a build cache",
		SelfDescription: "I keep CI green",
	}

	exact := testScorer().distance("jane roe", rec)
	fuzzy := testScorer().distance("jne roe", rec)

	assert.Less(t, exact, fuzzy, "exact name match must outrank a typo")
	assert.LessOrEqual(t, exact, DefaultRankerConfig().Threshold)
}

func TestScorer_SubstringBeatsEditDistance(t *testing.T) {
	substring := fieldDistance("alex", "alexandra chen")
	distant := fieldDistance("alxe", "alexandra chen")

	assert.Less(t, substring, distant)
	assert.Equal(t, distContains, substring)
}

func TestScorer_FieldWeights(t *testing.T) {
	s := testScorer()

	// Both records match in name and project with the same two signals,
	// just swapped between the fields. The name carries double weight,
	// so the record whose stronger signal sits in the name field must
	// score strictly better.
	exactName := roster.Record{Name: "tooling", CurrentProject: "tooling hub"}
	exactProject := roster.Record{Name: "tooling hub", CurrentProject: "tooling"}

	assert.Less(t, s.distance("tooling", exactName), s.distance("tooling", exactProject))
}

func TestScorer_LoneFieldMatchScoresItsDistance(t *testing.T) {
	rec := roster.Record{
		Name:            "Jane Roe",
		Title:           "Platform Engineer",
		CurrentProject:  "a build cache",
		SelfDescription: "I keep CI green",
	}

	// Only the name field comes within the threshold, at term distance
	// 0.25. The combined score must be exactly that, not an inflated
	// partial-weight power of it.
	d := testScorer().distance("jene", rec)
	assert.InDelta(t, 0.25, d, 1e-9)
	assert.LessOrEqual(t, d, DefaultRankerConfig().Threshold)
}

func TestScorer_EmptyQueryIsWorst(t *testing.T) {
	rec := roster.Record{Name: "Jane Roe"}
	assert.Equal(t, distWorst, testScorer().distance("", rec))
	assert.Equal(t, distWorst, testScorer().distance("   ", rec))
}

func TestScorer_MoreMatchingFieldsScoreBetter(t *testing.T) {
	s := testScorer()

	twoFields := roster.Record{Name: "Tooling Team", CurrentProject: "tooling"}
	oneField := roster.Record{Name: "Tooling Team", CurrentProject: "payments"}

	assert.Less(t, s.distance("tooling", twoFields), s.distance("tooling", oneField))
}

func TestScorer_NoFieldWithinThresholdIsWorst(t *testing.T) {
	rec := roster.Record{
		Name:            "Jane Roe",
		Title:           "Engineer",
		CurrentProject:  "payments",
		SelfDescription: "likes queues",
	}

	assert.Equal(t, distWorst, testScorer().distance("xyzzy-no-match-123", rec))
}

func TestScorer_ScoreIsClamped(t *testing.T) {
	rec := roster.Record{Name: "zzz"}
	d := testScorer().distance("completely unrelated query text", rec)
	assert.GreaterOrEqual(t, d, 0.0)
	assert.LessOrEqual(t, d, 1.0)
}

func TestNormalizedLevenshtein(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "kitten", "kitten", 0.0},
		{"classic pair", "kitten", "sitting", 3.0 / 7.0},
		{"one empty", "", "abc", 1.0},
		{"both empty", "", "", 0.0},
		{"single substitution", "jane", "janf", 0.25},
		{"adjacent transposition", "jnae", "jane", 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, normalizedLevenshtein(tt.a, tt.b), 1e-9)
		})
	}
}

func TestBestTokenDistance_ShortCircuitsOnExact(t *testing.T) {
	d := bestTokenDistance("roe", []string{"jane", "roe", "zzz"})
	assert.Equal(t, distExact, d)
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, DefaultWeights().Sum(), 1e-9)
}
