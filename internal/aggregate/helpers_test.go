package aggregate_test

import (
	"time"

	"github.com/quakewatch/quake-feed-aggregator/internal/domain"
)

// fixedNow is the deterministic "now" reference used across the suite.
var fixedNow = time.Date(2026, time.August, 23, 12, 0, 0, 0, time.UTC)

func f64(v float64) *float64 { return &v }

func i64(v int64) *int64 { return &v }

// eventAt builds an event whose timestamp is `age` before fixedNow.
func eventAt(id string, age time.Duration, mag float64) domain.Event {
	return domain.Event{
		ID:        id,
		Magnitude: f64(mag),
		Time:      i64(fixedNow.Add(-age).UnixMilli()),
	}
}

// eventNoTime builds an event without a usable timestamp.
func eventNoTime(id string, mag float64) domain.Event {
	return domain.Event{ID: id, Magnitude: f64(mag)}
}

// eventNoMag builds a timestamped event without a usable magnitude.
func eventNoMag(id string, age time.Duration) domain.Event {
	return domain.Event{ID: id, Time: i64(fixedNow.Add(-age).UnixMilli())}
}

func ids(events []domain.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}
