package search

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/aryan-pahwani/hermes/internal/roster"
)

// Searchable field names in the bleve index. Only the weighted fields
// participate in retrieval; link and contact fields never match.
const (
	fieldName    = "name"
	fieldTitle   = "title"
	fieldProject = "project"
	fieldWhoami  = "whoami"
)

// rosterDocument is the document structure for bleve indexing.
type rosterDocument struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Project string `json:"project"`
	Whoami  string `json:"whoami"`
}

// BleveRanker implements Ranker using a mem-only bleve index for
// candidate retrieval, then re-scores candidates with the weighted
// fuzzy distance so results land on the 0-best scale.
type BleveRanker struct {
	mu      sync.RWMutex
	index   bleve.Index
	records []roster.Record
	config  RankerConfig
	scorer  scorer
	closed  bool
}

// Ensure BleveRanker implements the Ranker interface.
var _ Ranker = (*BleveRanker)(nil)

// NewBleveRanker creates a ranker with the given configuration.
// Call Index before Search.
func NewBleveRanker(config RankerConfig) *BleveRanker {
	if config.Threshold <= 0 {
		config.Threshold = DefaultRankerConfig().Threshold
	}
	if config.Weights.Sum() == 0 {
		config.Weights = DefaultWeights()
	}
	if config.Fuzziness <= 0 {
		config.Fuzziness = DefaultRankerConfig().Fuzziness
	}
	return &BleveRanker{
		config: config,
		scorer: scorer{weights: config.Weights, threshold: config.Threshold},
	}
}

// Index rebuilds the index over the given records, replacing any
// previous index. Document IDs are store ordinals so tie-breaking can
// recover original order.
func (r *BleveRanker) Index(ctx context.Context, records []roster.Record) error {
	mapping := bleve.NewIndexMapping()
	idx, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	batch := idx.NewBatch()
	for i, rec := range records {
		doc := rosterDocument{
			Name:    rec.Name,
			Title:   rec.Title,
			Project: rec.CurrentProject,
			Whoami:  rec.SelfDescription,
		}
		if err := batch.Index(strconv.Itoa(i), doc); err != nil {
			_ = idx.Close()
			return fmt.Errorf("index record %q: %w", rec.Name, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return fmt.Errorf("execute batch: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		_ = idx.Close()
		return fmt.Errorf("ranker is closed")
	}
	if r.index != nil {
		_ = r.index.Close()
	}
	r.index = idx
	r.records = records
	return nil
}

// Search returns all records with at least one field within the
// acceptance threshold, ordered best first with ties broken by store
// order.
func (r *BleveRanker) Search(ctx context.Context, queryStr string) ([]ScoredMatch, error) {
	queryStr = strings.TrimSpace(queryStr)
	if queryStr == "" {
		return []ScoredMatch{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, fmt.Errorf("ranker is closed")
	}
	if r.index == nil {
		return []ScoredMatch{}, nil
	}

	req := bleve.NewSearchRequest(r.candidateQuery(queryStr))
	req.Size = len(r.records)

	result, err := r.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("candidate search: %w", err)
	}

	candidates := make([]int, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ordinal, err := strconv.Atoi(hit.ID)
		if err != nil || ordinal < 0 || ordinal >= len(r.records) {
			continue
		}
		candidates = append(candidates, ordinal)
	}

	accepted := r.scoreOrdinals(queryStr, candidates)

	// The index tops out at edit distance 2, so a heavier typo can slip
	// past retrieval while still landing within the scorer's threshold.
	// When no candidate survives, score the whole roster instead; it is
	// small enough that the exhaustive pass stays cheap.
	if len(accepted) == 0 && len(candidates) < len(r.records) {
		all := make([]int, len(r.records))
		for i := range all {
			all[i] = i
		}
		accepted = r.scoreOrdinals(queryStr, all)
	}

	// Best first; equal scores keep store order.
	sort.SliceStable(accepted, func(i, j int) bool {
		if accepted[i].match.Score != accepted[j].match.Score {
			return accepted[i].match.Score < accepted[j].match.Score
		}
		return accepted[i].ordinal < accepted[j].ordinal
	})

	matches := make([]ScoredMatch, len(accepted))
	for i, s := range accepted {
		matches[i] = s.match
	}
	return matches, nil
}

type scoredOrdinal struct {
	ordinal int
	match   ScoredMatch
}

// scoreOrdinals re-scores the given records and keeps only those whose
// combined score lands at or below the acceptance threshold.
// Caller must hold r.mu.
func (r *BleveRanker) scoreOrdinals(queryStr string, ordinals []int) []scoredOrdinal {
	accepted := make([]scoredOrdinal, 0, len(ordinals))
	for _, ordinal := range ordinals {
		rec := r.records[ordinal]
		dist := r.scorer.distance(queryStr, rec)
		if dist > r.config.Threshold {
			continue
		}
		accepted = append(accepted, scoredOrdinal{
			ordinal: ordinal,
			match:   ScoredMatch{Record: rec, Score: dist},
		})
	}
	return accepted
}

// candidateQuery builds a disjunction of per-field fuzzy match queries
// plus per-term prefix queries, boosted by field weight. Retrieval is
// deliberately broad; the scorer and threshold do the real ranking.
func (r *BleveRanker) candidateQuery(queryStr string) query.Query {
	fields := []struct {
		name   string
		weight float64
	}{
		{fieldName, r.config.Weights.Name},
		{fieldTitle, r.config.Weights.Title},
		{fieldProject, r.config.Weights.CurrentProject},
		{fieldWhoami, r.config.Weights.SelfDescription},
	}

	terms := strings.Fields(strings.ToLower(queryStr))

	var clauses []query.Query
	for _, f := range fields {
		mq := bleve.NewMatchQuery(queryStr)
		mq.SetField(f.name)
		mq.SetFuzziness(r.config.Fuzziness)
		mq.SetBoost(f.weight)
		clauses = append(clauses, mq)

		for _, term := range terms {
			pq := bleve.NewPrefixQuery(term)
			pq.SetField(f.name)
			pq.SetBoost(f.weight)
			clauses = append(clauses, pq)
		}
	}

	return bleve.NewDisjunctionQuery(clauses...)
}

// Close releases the bleve index.
func (r *BleveRanker) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	if r.index != nil {
		return r.index.Close()
	}
	return nil
}
