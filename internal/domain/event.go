package domain

import (
	"math"
	"time"
)

// Event is one observed seismic event from a feed snapshot.
//
// Magnitude and Time use pointer fields because the upstream feed delivers
// both as nullable JSON values. Use Mag and When instead of dereferencing
// directly; they also reject NaN/Inf values that occasionally leak through.
type Event struct {
	ID        string   `json:"id"`
	Magnitude *float64 `json:"mag"`
	Time      *int64   `json:"time"` // milliseconds since epoch

	// Display metadata, passed through untouched by the aggregator.
	Place     string `json:"place,omitempty"`
	Alert     string `json:"alert,omitempty"` // PAGER level: green, yellow, orange, red
	Tsunami   bool   `json:"tsunami"`
	DetailURL string `json:"detail_url,omitempty"`

	// WGS-84 coordinates. Depth follows the GeoJSON convention of a third
	// coordinate element, in kilometers.
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	DepthKm   float64 `json:"depth_km"`
	HasCoords bool    `json:"has_coords"`
}

// Mag returns the magnitude and whether it is a usable finite number.
func (e Event) Mag() (float64, bool) {
	if e.Magnitude == nil {
		return 0, false
	}
	m := *e.Magnitude
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return 0, false
	}
	return m, true
}

// When returns the event time and whether a valid timestamp is present.
func (e Event) When() (time.Time, bool) {
	if e.Time == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*e.Time).UTC(), true
}

// TimeMillis returns the raw millisecond timestamp, or 0 when absent.
func (e Event) TimeMillis() int64 {
	if e.Time == nil {
		return 0
	}
	return *e.Time
}

// MajorPair tracks the two most recent events whose magnitude crossed the
// configured major threshold. The pair is owned by the caller and threaded
// through consolidation explicitly; nothing in this package holds it.
type MajorPair struct {
	Latest   *Event `json:"latest,omitempty"`
	Previous *Event `json:"previous,omitempty"`
}

// Interval returns the time between the two tracked events. It is only
// defined when both slots are populated with timestamped events.
func (p MajorPair) Interval() (time.Duration, bool) {
	if p.Latest == nil || p.Previous == nil {
		return 0, false
	}
	lt, lok := p.Latest.When()
	pt, pok := p.Previous.When()
	if !lok || !pok {
		return 0, false
	}
	return lt.Sub(pt), true
}

// IntervalMillis returns the interval in milliseconds, matching the wire
// shape consumers chart against. Nil when undefined.
func (p MajorPair) IntervalMillis() *int64 {
	d, ok := p.Interval()
	if !ok {
		return nil
	}
	ms := d.Milliseconds()
	return &ms
}
