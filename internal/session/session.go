// Package session tracks the transient state of one search invocation:
// the query, the resolved result set, and the enrichment status of each
// displayed record. A monotonically increasing generation identifies
// the live session; merges targeting an older generation are discarded.
package session

import "github.com/aryan-pahwani/hermes/internal/roster"

// Status is the enrichment state of a displayed record's annotation slot.
type Status int

const (
	// StatusPending is the initial state set on render.
	StatusPending Status = iota

	// StatusReceived means an annotation was merged in. Terminal.
	StatusReceived

	// StatusAbsent means enrichment finished without an annotation for
	// this record (no mapping entry, or the fetch failed). Terminal.
	StatusAbsent
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusReceived:
		return "received"
	case StatusAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// Session is the state of a single search invocation.
// Results are fixed at creation; only annotation statuses mutate, and
// only through the owning Manager (which holds the lock).
type Session struct {
	generation uint64
	query      string
	results    []roster.Record
	status     map[string]Status
}

func newSession(generation uint64, query string, results []roster.Record) *Session {
	status := make(map[string]Status, len(results))
	for _, rec := range results {
		status[rec.Name] = StatusPending
	}
	return &Session{
		generation: generation,
		query:      query,
		results:    results,
		status:     status,
	}
}

// Generation returns the session's generation marker.
func (s *Session) Generation() uint64 {
	return s.generation
}

// Query returns the raw query that produced this session.
func (s *Session) Query() string {
	return s.query
}

// Results returns the resolved result set in rank order.
// Callers must not mutate the returned slice.
func (s *Session) Results() []roster.Record {
	return s.results
}
