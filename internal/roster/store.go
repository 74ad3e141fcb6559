package roster

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Store holds the normalized roster in memory.
// The record sequence is ordered (load order = tie-break order for
// ranking) and read-only between loads. Init performs the one-shot
// initial load; Replace swaps the sequence when the source changes.
type Store struct {
	mu       sync.RWMutex
	records  []Record
	initOnce sync.Once
	initErr  error
}

// NewStore creates a store holding the given records.
// Invalid records (no name) are dropped, preserving order.
func NewStore(records []Record) *Store {
	s := &Store{}
	s.records = filterValid(records)
	return s
}

// NewEmptyStore creates a store that will be populated via Init.
func NewEmptyStore() *Store {
	return &Store{}
}

// Init loads the roster exactly once using the given loader.
// Subsequent calls return the result of the first load.
func (s *Store) Init(ctx context.Context, loader *Loader) error {
	s.initOnce.Do(func() {
		records, err := loader.Load(ctx)
		if err != nil {
			s.initErr = fmt.Errorf("load roster: %w", err)
			return
		}
		s.Replace(records)
	})
	return s.initErr
}

// Replace swaps the record sequence. Invalid records are dropped.
func (s *Store) Replace(records []Record) {
	valid := filterValid(records)

	s.mu.Lock()
	s.records = valid
	s.mu.Unlock()

	slog.Debug("roster_replaced", slog.Int("records", len(valid)))
}

// Records returns the ordered record sequence.
// Callers must not mutate the returned slice.
func (s *Store) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// FindByMarker returns the first record whose name contains the given
// substring, case-insensitively. Used by the creator-intent override.
func (s *Store) FindByMarker(marker string) (Record, bool) {
	if strings.TrimSpace(marker) == "" {
		return Record{}, false
	}

	needle := strings.ToLower(marker)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			return r, true
		}
	}
	return Record{}, false
}

func filterValid(records []Record) []Record {
	valid := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Valid() {
			valid = append(valid, r)
		}
	}
	return valid
}
