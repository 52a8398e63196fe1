package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// feed poller and aggregation pipeline.
type Metrics struct {
	FeedFetches       *prometheus.CounterVec   // labels: window, outcome={success,error}
	FeedFetchDuration *prometheus.HistogramVec // labels: window
	EventsIngested    *prometheus.CounterVec   // labels: window
	AlertsPublished   prometheus.Counter
	AlertErrors       prometheus.Counter
	PollerRunning     prometheus.Gauge
	SnapshotEvents    *prometheus.GaugeVec // labels: window
	MajorMagnitude    prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FeedFetches,
		m.FeedFetchDuration,
		m.EventsIngested,
		m.AlertsPublished,
		m.AlertErrors,
		m.PollerRunning,
		m.SnapshotEvents,
		m.MajorMagnitude,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FeedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "fetches_total",
			Help:      "Feed fetch attempts by window and outcome.",
		}, []string{"window", "outcome"}),
		FeedFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quake_feed",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a feed fetch and parse.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"window"}),
		EventsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "events_ingested_total",
			Help:      "Events accepted into a window snapshot after dedup and filtering.",
		}, []string{"window"}),
		AlertsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "alerts_published_total",
			Help:      "Major-event alerts published to the alert topic.",
		}),
		AlertErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "alert_errors_total",
			Help:      "Failed alert publish attempts.",
		}),
		PollerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_feed",
			Name:      "poller_running",
			Help:      "1 when the poll loop is active, 0 when shut down.",
		}),
		SnapshotEvents: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "quake_feed",
			Name:      "snapshot_events",
			Help:      "Event count in the current snapshot per window.",
		}, []string{"window"}),
		MajorMagnitude: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_feed",
			Name:      "major_latest_magnitude",
			Help:      "Magnitude of the most recent tracked major event.",
		}),
	}
}
