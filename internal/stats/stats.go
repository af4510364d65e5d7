// Package stats maintains per-message arrival statistics for a monitoring
// session: how many times each message has been seen and when it was last
// seen. It is the only state shared between the delivery and render paths.
package stats

import (
	"sync"
	"time"
)

// Entry holds the running statistics for one message name. A zero LastSeen
// means the message has never been observed.
type Entry struct {
	Count    uint64
	LastSeen time.Time
}

// Store is a concurrency-safe accumulator keyed by message name. Record is
// called from the bus delivery path while Snapshot is read from the render
// path; both go through a single RWMutex.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
	start   time.Time
}

// NewStore creates a store for a session that started at the given instant.
// All elapsed-time and rate computations are relative to it.
func NewStore(start time.Time) *Store {
	return &Store{
		entries: make(map[string]Entry),
		start:   start,
	}
}

// Record increments the count for name and advances its LastSeen. The count
// is monotone and LastSeen only moves forward, so out-of-order delivery
// cannot rewind recency.
func (s *Store) Record(name string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[name]
	e.Count++
	if at.After(e.LastSeen) {
		e.LastSeen = at
	}
	s.entries[name] = e
}

// Snapshot returns a point-in-time copy of all entries. The copy is safe to
// format and print without holding the lock, so a slow render never blocks
// ingestion. A name is present iff at least one event was recorded for it.
func (s *Store) Snapshot() map[string]Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Entry, len(s.entries))
	for name, e := range s.entries {
		out[name] = e
	}
	return out
}

// Get returns the entry for name and whether it exists.
func (s *Store) Get(name string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[name]
	return e, ok
}

// Empty reports whether no monitored message has ever been recorded.
func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries) == 0
}

// StartedAt returns the session start instant.
func (s *Store) StartedAt() time.Time {
	return s.start
}

// Elapsed returns whole seconds since session start, truncated.
func (s *Store) Elapsed(now time.Time) int64 {
	return int64(now.Sub(s.start) / time.Second)
}
