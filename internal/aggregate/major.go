package aggregate

import (
	"sort"

	"github.com/quakewatch/quake-feed-aggregator/internal/domain"
)

// FilterMajor returns the events qualifying as major: magnitude at or above
// threshold and a usable timestamp. Events without a timestamp cannot be
// ordered against the tracked pair and are excluded.
func FilterMajor(events []domain.Event, threshold float64) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		m, ok := e.Mag()
		if !ok || m < threshold {
			continue
		}
		if _, ok := e.When(); !ok {
			continue
		}
		out = append(out, e)
	}
	return out
}

// ConsolidateMajor merges a new batch of qualifying events with the
// currently held latest/previous pair and returns the updated pair.
//
// The merged set is stable-sorted descending by timestamp before
// deduplication, so when the same ID appears with different timestamps
// (upstream treats a re-fetch with a newer time as a record update) the
// most-recent-time copy wins regardless of arrival order. That makes
// consolidation commutative over the union of events seen so far: any
// interleaving of day/week/month ingestions converges to the same pair.
func ConsolidateMajor(pair domain.MajorPair, qualifying []domain.Event) domain.MajorPair {
	merged := make([]domain.Event, 0, len(qualifying)+2)
	merged = append(merged, qualifying...)
	if pair.Latest != nil {
		merged = append(merged, *pair.Latest)
	}
	if pair.Previous != nil {
		merged = append(merged, *pair.Previous)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].TimeMillis() > merged[j].TimeMillis()
	})
	merged = DeduplicateByID(merged)

	var out domain.MajorPair
	if len(merged) > 0 {
		latest := merged[0]
		out.Latest = &latest
	}
	if len(merged) > 1 {
		previous := merged[1]
		out.Previous = &previous
	}
	return out
}
