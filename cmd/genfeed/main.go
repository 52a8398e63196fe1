// Command genfeed writes a synthetic GeoJSON FeatureCollection that mimics
// the upstream summary feed, for local development against a static file
// server and for exercising the parser with controlled data.
//
// Usage:
//
//	go run ./cmd/genfeed -count 200 -days 7 -seed 42 -out all_week.geojson
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"
)

// feature mirrors the subset of the upstream feed shape the service reads.
type feature struct {
	Type       string         `json:"type"`
	ID         string         `json:"id"`
	Properties map[string]any `json:"properties"`
	Geometry   map[string]any `json:"geometry"`
}

var places = []string{
	"10km SSW of Ridgecrest, CA",
	"25km E of Honshu, Japan",
	"5km N of Reykjanesbaer, Iceland",
	"80km W of Valparaiso, Chile",
	"15km SE of Hualien City, Taiwan",
	"60km NNE of Anchorage, Alaska",
}

func main() {
	count := flag.Int("count", 200, "number of events to generate")
	days := flag.Int("days", 7, "spread events over the trailing N days")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	out := flag.String("out", "-", "output path, or - for stdout")
	flag.Parse()

	if *count <= 0 || *days <= 0 {
		fmt.Fprintln(os.Stderr, "FATAL: -count and -days must be positive")
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	now := time.Now().UTC()

	features := make([]feature, 0, *count)
	for i := 0; i < *count; i++ {
		features = append(features, randomFeature(rng, now, *days, i))
	}

	doc := map[string]any{
		"type":     "FeatureCollection",
		"metadata": map[string]any{"generated": now.UnixMilli(), "count": len(features)},
		"features": features,
	}

	w := os.Stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: create %s: %v\n", *out, err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: encode feed: %v\n", err)
		os.Exit(1)
	}
}

func randomFeature(rng *rand.Rand, now time.Time, days, i int) feature {
	// Magnitudes skew small the way real feeds do; occasional nulls mimic
	// preliminary records.
	var mag any
	if rng.Float64() < 0.02 {
		mag = nil
	} else {
		mag = round1(rng.ExpFloat64() * 1.5)
	}

	age := time.Duration(rng.Int63n(int64(days) * int64(24*time.Hour)))
	eventTime := now.Add(-age).UnixMilli()

	lat := -60 + rng.Float64()*120
	lon := -180 + rng.Float64()*360
	depth := round1(rng.Float64() * 600)

	tsunami := 0
	if m, ok := mag.(float64); ok && m >= 7 && rng.Float64() < 0.5 {
		tsunami = 1
	}

	return feature{
		Type: "Feature",
		ID:   fmt.Sprintf("gen%08d", i),
		Properties: map[string]any{
			"mag":     mag,
			"time":    eventTime,
			"place":   places[rng.Intn(len(places))],
			"alert":   nil,
			"tsunami": tsunami,
			"detail":  fmt.Sprintf("https://example.invalid/detail/gen%08d", i),
		},
		Geometry: map[string]any{
			"type":        "Point",
			"coordinates": []float64{round4(lon), round4(lat), depth},
		},
	}
}

func round1(v float64) float64 { return float64(int(v*10)) / 10 }
func round4(v float64) float64 { return float64(int(v*10000)) / 10000 }
