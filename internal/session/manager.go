package session

import (
	"log/slog"
	"sync"

	"github.com/aryan-pahwani/hermes/internal/roster"
)

// Manager owns the live session. Beginning a new session supersedes
// the previous one: its generation stops matching, which makes any
// in-flight enrichment merge for it inert on arrival.
type Manager struct {
	mu      sync.Mutex
	gen     uint64
	current *Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{}
}

// Begin starts a new session for the given query and result set,
// superseding the current one.
func (m *Manager) Begin(query string, results []roster.Record) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gen++
	m.current = newSession(m.gen, query, results)

	slog.Debug("session_started",
		slog.Uint64("generation", m.gen),
		slog.String("query", query),
		slog.Int("results", len(results)))

	return m.current
}

// Current returns the live session, or nil before the first search.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// IsLive reports whether the given generation is the current one.
func (m *Manager) IsLive(generation uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil && m.current.generation == generation
}

// MarkReceived transitions a record's slot from pending to received.
// Returns false if the generation is stale, the name is not displayed,
// or the slot already settled (terminal states never transition).
func (m *Manager) MarkReceived(generation uint64, name string) bool {
	return m.transition(generation, name, StatusReceived)
}

// MarkAbsent transitions a record's slot from pending to absent.
// Same staleness and terminality rules as MarkReceived.
func (m *Manager) MarkAbsent(generation uint64, name string) bool {
	return m.transition(generation, name, StatusAbsent)
}

// Status returns the annotation status for a displayed record of the
// current session. Unknown names report StatusAbsent.
func (m *Manager) Status(name string) Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return StatusAbsent
	}
	st, ok := m.current.status[name]
	if !ok {
		return StatusAbsent
	}
	return st
}

func (m *Manager) transition(generation uint64, name string, to Status) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil || m.current.generation != generation {
		return false
	}
	st, ok := m.current.status[name]
	if !ok || st != StatusPending {
		return false
	}
	m.current.status[name] = to
	return true
}
