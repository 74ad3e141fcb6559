// Package search provides weighted multi-field fuzzy ranking over the
// roster and query resolution (override rules, result bounding).
// Scores follow the fuzzy-distance convention: 0.0 is a perfect match,
// 1.0 is no match at all.
package search

import (
	"context"

	"github.com/aryan-pahwani/hermes/internal/roster"
)

// ScoredMatch pairs a record with its relevance score.
type ScoredMatch struct {
	// Record is the matched roster entry.
	Record roster.Record

	// Score is the weighted fuzzy distance in [0, 1], lower is better.
	Score float64
}

// Ranker indexes the roster and answers fuzzy queries.
type Ranker interface {
	// Index rebuilds the searchable structure over the given records.
	// Must be called again whenever the record sequence changes.
	Index(ctx context.Context, records []roster.Record) error

	// Search returns all records with at least one field within the
	// acceptance threshold, best first. Ties keep original store order.
	// The query must be non-empty; the resolver enforces this.
	Search(ctx context.Context, query string) ([]ScoredMatch, error)

	// Close releases index resources.
	Close() error
}

// Weights configures the per-field influence on the combined score.
// Weights must sum to 1.0.
type Weights struct {
	// Name is the weight of the name field (default: 0.4).
	Name float64

	// Title is the weight of the title field (default: 0.2).
	Title float64

	// CurrentProject is the weight of the current-project field (default: 0.2).
	CurrentProject float64

	// SelfDescription is the weight of the self-description field (default: 0.2).
	SelfDescription float64
}

// DefaultWeights returns the standard field weighting.
func DefaultWeights() Weights {
	return Weights{
		Name:            0.4,
		Title:           0.2,
		CurrentProject:  0.2,
		SelfDescription: 0.2,
	}
}

// Sum returns the total of all field weights.
func (w Weights) Sum() float64 {
	return w.Name + w.Title + w.CurrentProject + w.SelfDescription
}

// RankerConfig configures the fuzzy ranker.
type RankerConfig struct {
	// Weights are the per-field score weights.
	Weights Weights

	// Threshold is the worst distance still counted as a match
	// (default: 0.4). Records where no field comes within it are
	// excluded, and returned combined scores never exceed it.
	Threshold float64

	// Fuzziness is the edit distance allowed during candidate retrieval
	// (default: 2, the bleve maximum).
	Fuzziness int
}

// DefaultRankerConfig returns sensible ranker defaults.
func DefaultRankerConfig() RankerConfig {
	return RankerConfig{
		Weights:   DefaultWeights(),
		Threshold: 0.4,
		Fuzziness: 2,
	}
}
