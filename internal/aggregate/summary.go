package aggregate

import (
	"time"

	"github.com/quakewatch/quake-feed-aggregator/internal/domain"
)

// WindowSummary holds the chart-ready artifacts derived from one feed
// window's snapshot. This is the shape the HTTP layer serves.
type WindowSummary struct {
	Window      domain.Window `json:"window"`
	GeneratedAt time.Time     `json:"generated_at"`
	EventCount  int           `json:"event_count"`
	DailyCounts []DailyCount  `json:"daily_counts"`
	Histogram   []BandCount   `json:"histogram"`
	Sample      []domain.Event `json:"sample"`
}

// SummaryOptions bound the sampling stage of a summary build.
type SummaryOptions struct {
	SampleSize        int
	PriorityThreshold float64
}

// BuildWindowSummary runs a raw snapshot through the full pipeline for one
// window: dedup, span filter, then the three chart builders. The input
// snapshot is not mutated.
func BuildWindowSummary(w domain.Window, snapshot []domain.Event, now time.Time, opts SummaryOptions) WindowSummary {
	events := DeduplicateByID(snapshot)
	events = FilterByTime(events, w.Span(), 0, now)

	return WindowSummary{
		Window:      w,
		GeneratedAt: now,
		EventCount:  len(events),
		DailyCounts: BuildDailyCounts(events, w.TrailingDays(), now),
		Histogram:   BuildMagnitudeHistogram(events),
		Sample:      SampleWithPriority(events, opts.SampleSize, opts.PriorityThreshold),
	}
}
