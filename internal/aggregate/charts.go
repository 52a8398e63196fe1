package aggregate

import (
	"time"

	"github.com/quakewatch/quake-feed-aggregator/internal/domain"
)

// DailyCount is one calendar-day bucket in a trailing window.
type DailyCount struct {
	Date  string `json:"date"` // short display label, e.g. "Aug 23"
	Count int    `json:"count"`
}

// BandCount pairs a magnitude band with its event count.
type BandCount struct {
	Band  domain.MagnitudeBand `json:"band"`
	Count int                  `json:"count"`
}

const (
	dayKeyLayout   = "2006-01-02"
	dayLabelLayout = "Jan 2"
)

// BuildDailyCounts buckets events by calendar day (UTC) over the trailing
// numDays window ending at now. The result always has exactly numDays
// entries, oldest first, zero-filled for sparse days. Events outside the
// window or without a usable timestamp are skipped.
func BuildDailyCounts(events []domain.Event, numDays int, now time.Time) []DailyCount {
	if numDays <= 0 {
		return []DailyCount{}
	}

	buckets := make([]DailyCount, numDays)
	index := make(map[string]int, numDays)
	first := now.UTC().AddDate(0, 0, -(numDays - 1))
	for i := 0; i < numDays; i++ {
		day := first.AddDate(0, 0, i)
		buckets[i] = DailyCount{Date: day.Format(dayLabelLayout)}
		index[day.Format(dayKeyLayout)] = i
	}

	for _, e := range events {
		t, ok := e.When()
		if !ok {
			continue
		}
		if i, ok := index[t.Format(dayKeyLayout)]; ok {
			buckets[i].Count++
		}
	}
	return buckets
}

// BuildMagnitudeHistogram counts events per magnitude band. Every band is
// present in the output even at zero. Events without a finite numeric
// magnitude never increment any band, so the histogram total equals the
// count of numerically-valued events.
func BuildMagnitudeHistogram(events []domain.Event) []BandCount {
	bands := domain.Bands()
	counts := make([]BandCount, len(bands))
	for i, b := range bands {
		counts[i] = BandCount{Band: b}
	}

	for _, e := range events {
		m, ok := e.Mag()
		if !ok {
			continue
		}
		// Bands are contiguous, so the first match is the only match.
		for i := range counts {
			if counts[i].Band.Contains(m) {
				counts[i].Count++
				break
			}
		}
	}
	return counts
}
