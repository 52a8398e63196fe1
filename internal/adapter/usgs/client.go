// Package usgs fetches earthquake feed snapshots from the USGS real-time
// summary feeds, with a fallback to the FDSN event-query API.
package usgs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/quakewatch/quake-feed-aggregator/internal/domain"
)

// Client fetches GeoJSON feed snapshots over HTTP.
type Client struct {
	httpClient  *http.Client
	baseURL     string // summary feed root, e.g. https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary
	fallbackURL string // FDSN query endpoint, e.g. https://earthquake.usgs.gov/fdsnws/event/1/query
	logger      *slog.Logger
}

// NewClient creates a feed client. An empty fallbackURL disables the
// fallback chain.
func NewClient(baseURL, fallbackURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		fallbackURL: fallbackURL,
		logger:      logger,
	}
}

// FetchWindow retrieves one window's snapshot. The primary summary feed is
// tried first; on failure the fallback query API is tried with an equivalent
// time range. Both failing returns the primary error wrapped with the
// fallback one so callers see the whole chain.
func (c *Client) FetchWindow(ctx context.Context, w domain.Window) ([]domain.Event, error) {
	events, primaryErr := c.fetchSummary(ctx, w)
	if primaryErr == nil {
		return events, nil
	}
	if c.fallbackURL == "" {
		return nil, primaryErr
	}

	c.logger.Warn("primary feed fetch failed, trying fallback",
		"window", w, "error", primaryErr)

	events, fallbackErr := c.fetchFallback(ctx, w)
	if fallbackErr != nil {
		return nil, fmt.Errorf("primary: %w; fallback: %v", primaryErr, fallbackErr)
	}
	return events, nil
}

func (c *Client) fetchSummary(ctx context.Context, w domain.Window) ([]domain.Event, error) {
	u := fmt.Sprintf("%s/%s", c.baseURL, w.FeedPath())
	return c.doRequest(ctx, u, "summary")
}

func (c *Client) fetchFallback(ctx context.Context, w domain.Window) ([]domain.Event, error) {
	start := domain.Now().Add(-w.Span())
	params := url.Values{
		"format":    {"geojson"},
		"starttime": {start.UTC().Format(time.RFC3339)},
	}
	return c.doRequest(ctx, c.fallbackURL+"?"+params.Encode(), "fallback")
}

func (c *Client) doRequest(ctx context.Context, fullURL, source string) ([]domain.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s feed request: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s feed error: status %d: %s", source, resp.StatusCode, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s feed body: %w", source, err)
	}

	return domain.ParseFeed(data)
}
