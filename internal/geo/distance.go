// Package geo provides great-circle distance helpers for building regional
// event subsets.
package geo

import (
	"github.com/golang/geo/s2"

	"github.com/quakewatch/quake-feed-aggregator/internal/domain"
)

// EarthRadiusKm is the Earth's mean radius.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two WGS-84 points
// in kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// FilterWithinRadius returns the events located within radiusKm of the given
// center. Events without coordinates are excluded. Input order is preserved
// and the input is never mutated.
func FilterWithinRadius(events []domain.Event, lat, lon, radiusKm float64) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if !e.HasCoords {
			continue
		}
		if HaversineKm(lat, lon, e.Lat, e.Lon) <= radiusKm {
			out = append(out, e)
		}
	}
	return out
}
