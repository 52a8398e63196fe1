package aggregate_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quakewatch/quake-feed-aggregator/internal/aggregate"
	"github.com/quakewatch/quake-feed-aggregator/internal/domain"
)

func seededRand(t *testing.T, seed int64) {
	t.Helper()
	aggregate.SetRand(rand.New(rand.NewSource(seed)))
	t.Cleanup(func() { aggregate.SetRand(nil) })
}

func manyEvents(n int, mag float64) []domain.Event {
	out := make([]domain.Event, n)
	for i := range out {
		out[i] = eventAt(fmt.Sprintf("e%04d", i), time.Duration(i)*time.Minute, mag)
	}
	return out
}

func TestSampleWithPriority_SizeBounds(t *testing.T) {
	seededRand(t, 1)
	events := manyEvents(50, 2.0)

	assert.Len(t, aggregate.SampleWithPriority(events, 10, 4.5), 10)
	assert.Len(t, aggregate.SampleWithPriority(events, 50, 4.5), 50)
	assert.Len(t, aggregate.SampleWithPriority(events, 500, 4.5), 50)
	assert.Empty(t, aggregate.SampleWithPriority(events, 0, 4.5))
	assert.Empty(t, aggregate.SampleWithPriority(events, -1, 4.5))
	assert.Empty(t, aggregate.SampleWithPriority(nil, 10, 4.5))
}

func TestSampleWithPriority_KeepsAllPriorityEvents(t *testing.T) {
	seededRand(t, 2)
	events := manyEvents(100, 2.0)
	events = append(events,
		eventAt("major-1", time.Hour, 5.0),
		eventAt("major-2", 2*time.Hour, 6.2),
		eventAt("major-3", 3*time.Hour, 4.5),
	)

	got := aggregate.SampleWithPriority(events, 20, 4.5)
	require.Len(t, got, 20)

	seen := make(map[string]bool, len(got))
	for _, e := range got {
		seen[e.ID] = true
	}
	assert.True(t, seen["major-1"])
	assert.True(t, seen["major-2"])
	assert.True(t, seen["major-3"])
}

func TestSampleWithPriority_PriorityOverflowSamplesPriorityOnly(t *testing.T) {
	seededRand(t, 3)
	majors := manyEvents(30, 6.0)
	minors := manyEvents(30, 1.0)
	for i := range minors {
		minors[i].ID = "minor-" + minors[i].ID
	}

	got := aggregate.SampleWithPriority(append(majors, minors...), 10, 4.5)
	require.Len(t, got, 10)
	for _, e := range got {
		m, ok := e.Mag()
		require.True(t, ok)
		assert.GreaterOrEqual(t, m, 4.5, "minor event crowded out a major one: %s", e.ID)
	}
}

func TestSampleWithPriority_NoDuplicates(t *testing.T) {
	seededRand(t, 4)
	events := manyEvents(200, 2.0)

	got := aggregate.SampleWithPriority(events, 80, 4.5)
	require.Len(t, got, 80)

	seen := make(map[string]bool, len(got))
	for _, e := range got {
		assert.False(t, seen[e.ID], "duplicate %s", e.ID)
		seen[e.ID] = true
	}
}

func TestSampleWithPriority_DeterministicWithSeed(t *testing.T) {
	events := manyEvents(100, 2.0)

	aggregate.SetRand(rand.New(rand.NewSource(42)))
	first := aggregate.SampleWithPriority(events, 25, 4.5)
	aggregate.SetRand(rand.New(rand.NewSource(42)))
	second := aggregate.SampleWithPriority(events, 25, 4.5)
	aggregate.SetRand(nil)

	assert.Equal(t, ids(first), ids(second))
}

func TestSampleWithPriority_DoesNotMutateInput(t *testing.T) {
	seededRand(t, 5)
	events := manyEvents(40, 2.0)
	want := ids(events)

	aggregate.SampleWithPriority(events, 10, 4.5)
	assert.Equal(t, want, ids(events))
}
