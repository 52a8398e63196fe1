// Package aggregate implements the pure transformation pipeline applied to
// each raw feed snapshot: time-window filtering, deduplication, major-event
// consolidation, and chart artifact building. Every function takes an
// explicit "now" reference, never mutates its input, and degrades silently
// on malformed records.
package aggregate

import (
	"time"

	"github.com/quakewatch/quake-feed-aggregator/internal/domain"
)

// FilterByTime selects events whose timestamp falls in the half-open
// interval [now-startOffset, now-endOffset). The lower bound is inclusive
// and the upper bound exclusive: an event exactly startOffset old is kept,
// one exactly endOffset old is dropped. Events without a usable timestamp
// are excluded.
func FilterByTime(events []domain.Event, startOffset, endOffset time.Duration, now time.Time) []domain.Event {
	start := now.Add(-startOffset)
	end := now.Add(-endOffset)

	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		t, ok := e.When()
		if !ok {
			continue
		}
		if !t.Before(start) && t.Before(end) {
			out = append(out, e)
		}
	}
	return out
}
