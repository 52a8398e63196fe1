// Command fetch performs a one-shot fetch and aggregation of a single feed
// window and prints the resulting summary as JSON. Useful for smoke-testing
// connectivity and inspecting what the service would serve.
//
// Usage:
//
//	go run ./cmd/fetch -window day
//	go run ./cmd/fetch -window month -threshold 5.0 -sample 100
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/quakewatch/quake-feed-aggregator/internal/adapter/usgs"
	"github.com/quakewatch/quake-feed-aggregator/internal/aggregate"
	"github.com/quakewatch/quake-feed-aggregator/internal/domain"
)

func main() {
	windowName := flag.String("window", "day", "feed window: day, week, or month")
	baseURL := flag.String("base-url", "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary", "summary feed root URL")
	fallbackURL := flag.String("fallback-url", "https://earthquake.usgs.gov/fdsnws/event/1/query", "FDSN query fallback URL")
	threshold := flag.Float64("threshold", 4.5, "major / priority magnitude threshold")
	sampleSize := flag.Int("sample", 300, "sample size for the scatter subset")
	timeout := flag.Duration("timeout", 15*time.Second, "fetch timeout")
	flag.Parse()

	if code := run(*windowName, *baseURL, *fallbackURL, *threshold, *sampleSize, *timeout); code != 0 {
		os.Exit(code)
	}
}

func run(windowName, baseURL, fallbackURL string, threshold float64, sampleSize int, timeout time.Duration) int {
	w, err := domain.ParseWindow(windowName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	client := usgs.NewClient(baseURL, fallbackURL, timeout, logger)

	ctx, cancel := context.WithTimeout(context.Background(), timeout+5*time.Second)
	defer cancel()

	events, err := client.FetchWindow(ctx, w)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: fetch %s window: %v\n", w, err)
		return 1
	}

	summary := aggregate.BuildWindowSummary(w, events, domain.Now(), aggregate.SummaryOptions{
		SampleSize:        sampleSize,
		PriorityThreshold: threshold,
	})
	pair := aggregate.ConsolidateMajor(domain.MajorPair{}, aggregate.FilterMajor(events, threshold))

	out := struct {
		Summary aggregate.WindowSummary `json:"summary"`
		Major   domain.MajorPair        `json:"major"`
	}{Summary: summary, Major: pair}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: encode output: %v\n", err)
		return 1
	}
	return 0
}
