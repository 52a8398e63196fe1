// Package domain models public earthquake feed data.
//
// # Data Source
//
// Events originate from the USGS real-time summary feeds, published as
// GeoJSON FeatureCollections at
// https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/ with one file
// per retention window (all_day, all_week, all_month). A secondary FDSN
// event-query endpoint serves as a fallback when the summary feed is
// unavailable. The feeds overlap in time range, so the same event ID appears
// across windows; deduplication by ID is the caller's responsibility.
//
// # Feed Conventions
//
// Coordinates:
//
//	GeoJSON geometry order is [longitude, latitude, depth].
//	Depth is in kilometers and may be absent on malformed features.
//
// Timestamps:
//
//	Milliseconds since the Unix epoch, UTC. The field is nullable; events
//	without a usable timestamp are excluded from time-filtered views rather
//	than rejected outright.
//
// Magnitude:
//
//	Nullable floating point. Preliminary records occasionally carry null or
//	non-finite values; [Event.Mag] guards both so numeric aggregation can
//	skip them silently.
//
// Alert levels:
//
//	PAGER alert strings (green, yellow, orange, red) and the tsunami flag
//	are opaque pass-through metadata surfaced to consumers unchanged.
//
// # Severity and Bands
//
// [Severity] maps magnitude to a four-level label (low, moderate, high,
// critical) with thresholds 2.5 / 4.5 / 6.0. [Bands] defines the fixed
// histogram band set ("<1" through "7+"): contiguous, non-overlapping,
// open at the extremes, so every finite magnitude lands in exactly one band.
package domain
