package domain

import (
	"encoding/json"
	"fmt"
)

// feedCollection mirrors the USGS summary feed GeoJSON envelope. Only the
// fields the aggregator consumes are declared; everything else is dropped
// during decoding.
type feedCollection struct {
	Features []feedFeature `json:"features"`
}

type feedFeature struct {
	ID         string         `json:"id"`
	Properties feedProperties `json:"properties"`
	Geometry   *feedGeometry  `json:"geometry"`
}

type feedProperties struct {
	Mag     *float64 `json:"mag"`
	Time    *int64   `json:"time"`
	Place   string   `json:"place"`
	Alert   string   `json:"alert"`
	Tsunami int      `json:"tsunami"`
	Detail  string   `json:"detail"`
}

type feedGeometry struct {
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth_km]
}

// ParseFeed decodes a GeoJSON FeatureCollection snapshot into events.
// Individual malformed features are skipped rather than failing the batch;
// only an undecodable envelope is an error. Features without a stable ID are
// dropped because every downstream stage keys on it.
func ParseFeed(data []byte) ([]Event, error) {
	var fc feedCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	events := make([]Event, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f.ID == "" {
			continue
		}
		events = append(events, eventFromFeature(f))
	}
	return events, nil
}

func eventFromFeature(f feedFeature) Event {
	e := Event{
		ID:        f.ID,
		Magnitude: f.Properties.Mag,
		Time:      f.Properties.Time,
		Place:     f.Properties.Place,
		Alert:     f.Properties.Alert,
		Tsunami:   f.Properties.Tsunami > 0,
		DetailURL: f.Properties.Detail,
	}
	if f.Geometry != nil && len(f.Geometry.Coordinates) >= 2 {
		e.Lon = f.Geometry.Coordinates[0]
		e.Lat = f.Geometry.Coordinates[1]
		e.HasCoords = true
		if len(f.Geometry.Coordinates) >= 3 {
			e.DepthKm = f.Geometry.Coordinates[2]
		}
	}
	return e
}
