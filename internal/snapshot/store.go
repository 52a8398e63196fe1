// Package snapshot holds the caller-side state the aggregator threads
// through: the last-good summary and event set per feed window, plus the
// single shared major-event pair. Everything is recomputed in memory on each
// fetch cycle; a failed fetch leaves the previous snapshot in place.
package snapshot

import (
	"sync"
	"time"

	"github.com/quakewatch/quake-feed-aggregator/internal/aggregate"
	"github.com/quakewatch/quake-feed-aggregator/internal/domain"
)

// Store is a thread-safe in-memory snapshot holder. The poller writes, the
// HTTP layer reads. There is no eviction: the key space is the fixed window
// set.
type Store struct {
	mu        sync.RWMutex
	summaries map[domain.Window]aggregate.WindowSummary
	events    map[domain.Window][]domain.Event
	updatedAt map[domain.Window]time.Time
	major     domain.MajorPair
}

// New creates an empty store.
func New() *Store {
	return &Store{
		summaries: make(map[domain.Window]aggregate.WindowSummary),
		events:    make(map[domain.Window][]domain.Event),
		updatedAt: make(map[domain.Window]time.Time),
	}
}

// SetWindow replaces a window's summary and deduplicated event set.
func (s *Store) SetWindow(w domain.Window, summary aggregate.WindowSummary, events []domain.Event, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[w] = summary
	s.events[w] = events
	s.updatedAt[w] = at
}

// Summary returns the last-good summary for a window, if one exists.
func (s *Store) Summary(w domain.Window) (aggregate.WindowSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary, ok := s.summaries[w]
	return summary, ok
}

// Events returns the last-good deduplicated event set for a window. The
// returned slice is a copy; callers may filter it freely.
func (s *Store) Events(w domain.Window) ([]domain.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events, ok := s.events[w]
	if !ok {
		return nil, false
	}
	out := make([]domain.Event, len(events))
	copy(out, events)
	return out, true
}

// UpdatedAt returns when a window's snapshot was last refreshed.
func (s *Store) UpdatedAt(w domain.Window) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	at, ok := s.updatedAt[w]
	return at, ok
}

// ConsolidateMajor merges qualifying events into the shared major pair under
// the lock, so concurrent window ingestions serialize their consolidations.
// Returns the updated pair and whether the latest slot changed.
func (s *Store) ConsolidateMajor(qualifying []domain.Event) (domain.MajorPair, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.major
	s.major = aggregate.ConsolidateMajor(s.major, qualifying)

	changed := latestID(s.major) != latestID(before)
	return s.major, changed
}

// Major returns the current major-event pair.
func (s *Store) Major() domain.MajorPair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.major
}

func latestID(p domain.MajorPair) string {
	if p.Latest == nil {
		return ""
	}
	return p.Latest.ID
}
