package search

import (
	"math"
	"strings"

	"github.com/aryan-pahwani/hermes/internal/roster"
)

// Distance constants for non-exact matches. Containment is a much
// stronger signal than edit proximity, so it scores close to exact.
const (
	distExact    = 0.0
	distContains = 0.01
	distTokenSub = 0.2
	distWorst    = 1.0

	// scoreFloor keeps an exact field match from zeroing the whole
	// weighted product.
	scoreFloor = 0.001
)

// scorer computes the weighted fuzzy distance between a query and a
// record. It is a pure function of its configuration; the ranker uses
// it to re-score bleve candidates on the 0-best scale.
//
// A record matches when at least one field's raw distance is at or
// below the threshold. The combined score is the weighted geometric
// mean of the matching fields' distances, with exponents normalized by
// the matched weight sum. The mean never exceeds the worst matching
// field, so a lone field match scores exactly its own distance and the
// combined score stays within the acceptance threshold. With several
// matching fields, a heavier weight pulls the score harder toward that
// field's distance.
type scorer struct {
	weights   Weights
	threshold float64
}

// distance returns the combined score in [0, 1], 0 best.
// distWorst means no field matched within the threshold.
func (s scorer) distance(query string, rec roster.Record) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return distWorst
	}

	fields := []struct {
		value  string
		weight float64
	}{
		{rec.Name, s.weights.Name},
		{rec.Title, s.weights.Title},
		{rec.CurrentProject, s.weights.CurrentProject},
		{rec.SelfDescription, s.weights.SelfDescription},
	}

	type fieldMatch struct {
		dist   float64
		weight float64
	}
	matched := make([]fieldMatch, 0, len(fields))
	var weightSum float64
	for _, f := range fields {
		if f.weight <= 0 {
			continue
		}
		d := fieldDistance(q, f.value)
		if d > s.threshold {
			continue
		}
		if d < scoreFloor {
			d = scoreFloor
		}
		matched = append(matched, fieldMatch{dist: d, weight: f.weight})
		weightSum += f.weight
	}

	if len(matched) == 0 || weightSum <= 0 {
		return distWorst
	}

	score := 1.0
	for _, m := range matched {
		score *= math.Pow(m.dist, m.weight/weightSum)
	}
	return clamp01(score)
}

// fieldDistance scores a single field against the query: the best of a
// whole-string comparison and a term-wise one. An empty field carries
// no signal and scores worst.
func fieldDistance(query, field string) float64 {
	f := strings.ToLower(strings.TrimSpace(field))
	if f == "" {
		return distWorst
	}
	if f == query {
		return distExact
	}
	if strings.Contains(f, query) {
		return distContains
	}

	best := normalizedLevenshtein(query, f)

	// Term-wise pass: each query term against its best field token,
	// averaged. Catches word-order swaps the whole-string comparison
	// misses.
	terms := strings.Fields(query)
	tokens := strings.Fields(f)
	if len(terms) > 0 && len(tokens) > 0 {
		var sum float64
		for _, term := range terms {
			sum += bestTokenDistance(term, tokens)
		}
		if avg := sum / float64(len(terms)); avg < best {
			best = avg
		}
	}
	return clamp01(best)
}

// bestTokenDistance returns the best (lowest) distance between one
// query term and any token of the field.
func bestTokenDistance(term string, tokens []string) float64 {
	best := distWorst
	for _, tok := range tokens {
		var d float64
		switch {
		case tok == term:
			d = distExact
		case len(term) >= 2 && len(tok) >= 2 &&
			(strings.Contains(tok, term) || strings.Contains(term, tok)):
			d = distTokenSub
		default:
			d = normalizedLevenshtein(term, tok)
		}
		if d < best {
			best = d
		}
		if best == distExact {
			break
		}
	}
	return best
}

// normalizedLevenshtein returns edit distance divided by the longer
// string length, yielding a score in [0, 1]. Adjacent transpositions
// count as one edit, so swapped-letter typos stay close.
func normalizedLevenshtein(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 && lb == 0 {
		return distExact
	}
	if la == 0 || lb == 0 {
		return distWorst
	}

	prevPrev := make([]int, lb+1)
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if t := prevPrev[j-2] + 1; t < curr[j] {
					curr[j] = t
				}
			}
		}
		prevPrev, prev, curr = prev, curr, prevPrev
	}

	longer := la
	if lb > la {
		longer = lb
	}
	return float64(prev[lb]) / float64(longer)
}

func minInt(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
