package aggregate

import (
	"math/rand"
	"time"

	"github.com/quakewatch/quake-feed-aggregator/internal/domain"
)

// rng is a package-level random source so tests can seed sampling via
// SetRand, mirroring the domain package's injectable clock.
var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// SetRand swaps the sampling random source. Pass nil to reset to a
// time-seeded source.
func SetRand(r *rand.Rand) {
	if r == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		return
	}
	rng = r
}

// SampleWithPriority selects at most sampleSize events for chart rendering,
// keeping every priority event (magnitude >= priorityThreshold) before any
// non-priority slot is filled. When priority events alone exceed the budget,
// a uniform sample is drawn from them only; a minor event never displaces a
// major one.
func SampleWithPriority(events []domain.Event, sampleSize int, priorityThreshold float64) []domain.Event {
	if sampleSize <= 0 || len(events) == 0 {
		return []domain.Event{}
	}

	priority := make([]domain.Event, 0, len(events))
	other := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if m, ok := e.Mag(); ok && m >= priorityThreshold {
			priority = append(priority, e)
			continue
		}
		other = append(other, e)
	}

	if len(priority) >= sampleSize {
		return sampleUniform(priority, sampleSize)
	}

	out := make([]domain.Event, 0, sampleSize)
	out = append(out, priority...)
	out = append(out, sampleUniform(other, sampleSize-len(priority))...)
	return out
}

// sampleUniform draws n events uniformly without replacement using a partial
// Fisher–Yates shuffle: walk from the last index backward, swap with a
// random earlier-or-equal index, and stop once n tail elements are
// finalized. Only n swaps happen no matter how large the input is.
//
// When n >= len(events) the input is returned as an order-preserving copy,
// not a shuffle; callers only rely on length and membership.
func sampleUniform(events []domain.Event, n int) []domain.Event {
	if n <= 0 {
		return []domain.Event{}
	}
	if n >= len(events) {
		out := make([]domain.Event, len(events))
		copy(out, events)
		return out
	}

	pool := make([]domain.Event, len(events))
	copy(pool, events)
	for i := len(pool) - 1; i >= len(pool)-n; i-- {
		j := rng.Intn(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[len(pool)-n:]
}
