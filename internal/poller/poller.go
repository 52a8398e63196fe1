// Package poller drives the fetch-aggregate-store cycle for every feed
// window until shut down.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/quakewatch/quake-feed-aggregator/internal/aggregate"
	"github.com/quakewatch/quake-feed-aggregator/internal/domain"
	"github.com/quakewatch/quake-feed-aggregator/internal/observability"
	"github.com/quakewatch/quake-feed-aggregator/internal/snapshot"
)

// Fetcher retrieves one window's raw feed snapshot.
type Fetcher interface {
	FetchWindow(ctx context.Context, w domain.Window) ([]domain.Event, error)
}

// AlertPublisher is notified when consolidation produces a new latest major
// event. Implementations must tolerate being called repeatedly.
type AlertPublisher interface {
	PublishMajor(ctx context.Context, pair domain.MajorPair) error
}

// Poller orchestrates the periodic fetch-aggregate-store loop.
type Poller struct {
	fetcher   Fetcher
	store     *snapshot.Store
	publisher AlertPublisher // nil when alerts are disabled
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
	interval  time.Duration
	opts      aggregate.SummaryOptions
	ready     atomic.Bool
}

// New creates a Poller. Passing a nil clock selects the real one.
func New(f Fetcher, store *snapshot.Store, publisher AlertPublisher, logger *slog.Logger,
	metrics *observability.Metrics, clock clockwork.Clock, interval time.Duration,
	opts aggregate.SummaryOptions) *Poller {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Poller{
		fetcher:   f,
		store:     store,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		clock:     clock,
		interval:  interval,
		opts:      opts,
	}
}

// CheckReadiness returns nil once at least one window has been ingested
// successfully, or an error describing why the service is not yet ready.
func (p *Poller) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no feed window has been ingested yet")
	}
	return nil
}

// Run executes the poll loop until the context is cancelled. A cycle where
// every window fetch fails shortens the next sleep with exponential backoff
// (200ms doubling, capped at 5s) so recovery is quick without hammering a
// struggling upstream.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("poller started", "interval", p.interval, "major_threshold", p.opts.PriorityThreshold)
	p.metrics.PollerRunning.Set(1)
	defer p.metrics.PollerRunning.Set(0)

	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		anyOK := p.runCycle(ctx)
		if ctx.Err() != nil {
			p.logger.Info("poller stopping", "reason", ctx.Err())
			return nil
		}

		sleep := p.interval
		if !anyOK {
			sleep = backoff
			backoff = nextBackoff(backoff, maxBackoff)
		} else {
			backoff = 200 * time.Millisecond
		}

		if !p.sleep(ctx, sleep) {
			p.logger.Info("poller stopping", "reason", ctx.Err())
			return nil
		}
	}
}

// runCycle ingests every window once. Returns true if at least one window
// succeeded.
func (p *Poller) runCycle(ctx context.Context) bool {
	anyOK := false
	for _, w := range domain.Windows() {
		if ctx.Err() != nil {
			return anyOK
		}
		if err := p.ingestWindow(ctx, w); err != nil {
			p.logger.Error("window ingest failed", "window", w, "error", err)
			continue
		}
		anyOK = true
	}
	return anyOK
}

// ingestWindow runs one window's snapshot through the full pipeline and
// stores the result. A failed fetch leaves the previous snapshot in place.
func (p *Poller) ingestWindow(ctx context.Context, w domain.Window) error {
	start := p.clock.Now()

	raw, err := p.fetcher.FetchWindow(ctx, w)
	if err != nil {
		p.metrics.FeedFetches.WithLabelValues(string(w), "error").Inc()
		return err
	}
	p.metrics.FeedFetches.WithLabelValues(string(w), "success").Inc()
	p.metrics.FeedFetchDuration.WithLabelValues(string(w)).Observe(p.clock.Since(start).Seconds())

	now := p.clock.Now()
	events := aggregate.DeduplicateByID(raw)
	events = aggregate.FilterByTime(events, w.Span(), 0, now)
	summary := aggregate.BuildWindowSummary(w, raw, now, p.opts)

	p.store.SetWindow(w, summary, events, now)
	p.metrics.EventsIngested.WithLabelValues(string(w)).Add(float64(len(events)))
	p.metrics.SnapshotEvents.WithLabelValues(string(w)).Set(float64(len(events)))

	p.consolidateMajor(ctx, events)

	p.ready.Store(true)
	p.logger.Debug("window ingested", "window", w, "events", len(events))
	return nil
}

// consolidateMajor merges the window's qualifying events into the shared
// major pair and publishes an alert when the latest slot changes.
func (p *Poller) consolidateMajor(ctx context.Context, events []domain.Event) {
	qualifying := aggregate.FilterMajor(events, p.opts.PriorityThreshold)
	pair, changed := p.store.ConsolidateMajor(qualifying)

	if pair.Latest != nil {
		if m, ok := pair.Latest.Mag(); ok {
			p.metrics.MajorMagnitude.Set(m)
		}
	}
	if !changed || p.publisher == nil {
		return
	}

	if err := p.publisher.PublishMajor(ctx, pair); err != nil {
		p.metrics.AlertErrors.Inc()
		p.logger.Error("alert publish failed", "event_id", pair.Latest.ID, "error", err)
		return
	}
	p.metrics.AlertsPublished.Inc()
	p.logger.Info("major event alert published",
		"event_id", pair.Latest.ID, "place", pair.Latest.Place)
}

// sleep waits for d using the injected clock. Returns false if the context
// was cancelled first.
func (p *Poller) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-p.clock.After(d):
		return true
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}
