package aggregate

import "github.com/quakewatch/quake-feed-aggregator/internal/domain"

// DeduplicateByID keeps the first occurrence of each event ID, preserving
// input order. Overlapping feed windows (day inside week inside month)
// reintroduce the same ID; paired with a descending time sort, "first
// occurrence" means "most recent representation". Idempotent.
func DeduplicateByID(events []domain.Event) []domain.Event {
	seen := make(map[string]struct{}, len(events))
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}
