package domain

import "math"

// MagnitudeBand is a half-open magnitude range with a display color.
// Bands are contiguous and non-overlapping; the extremes are open so that
// every finite magnitude falls into exactly one band.
type MagnitudeBand struct {
	Label string  `json:"label"`
	Min   float64 `json:"-"` // inclusive; -Inf on the first band
	Max   float64 `json:"-"` // exclusive; +Inf on the last band
	Color string  `json:"color"`
}

// Contains reports whether m falls inside the band's [Min, Max) range.
func (b MagnitudeBand) Contains(m float64) bool {
	return m >= b.Min && m < b.Max
}

// Bands is the fixed chart band set, ordered weakest to strongest.
// Colors follow the dashboard's magnitude palette.
func Bands() []MagnitudeBand {
	return []MagnitudeBand{
		{Label: "<1", Min: math.Inf(-1), Max: 1, Color: "#a3e635"},
		{Label: "1-1.9", Min: 1, Max: 2, Color: "#84cc16"},
		{Label: "2-2.9", Min: 2, Max: 3, Color: "#facc15"},
		{Label: "3-3.9", Min: 3, Max: 4, Color: "#fb923c"},
		{Label: "4-4.9", Min: 4, Max: 5, Color: "#f97316"},
		{Label: "5-5.9", Min: 5, Max: 6, Color: "#ef4444"},
		{Label: "6-6.9", Min: 6, Max: 7, Color: "#dc2626"},
		{Label: "7+", Min: 7, Max: math.Inf(1), Color: "#7f1d1d"},
	}
}

// Severity maps a magnitude to a four-level label for user-facing display.
// Thresholds follow the dashboard's risk scale:
//
//	<2.5 low | <4.5 moderate | <6.0 high | ≥6.0 critical
//
// Returns empty for events without a usable magnitude.
func Severity(e Event) string {
	m, ok := e.Mag()
	if !ok {
		return ""
	}
	switch {
	case m >= 6.0:
		return "critical"
	case m >= 4.5:
		return "high"
	case m >= 2.5:
		return "moderate"
	default:
		return "low"
	}
}
