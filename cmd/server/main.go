package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/quakewatch/quake-feed-aggregator/internal/adapter/http"
	kafkaadapter "github.com/quakewatch/quake-feed-aggregator/internal/adapter/kafka"
	"github.com/quakewatch/quake-feed-aggregator/internal/adapter/usgs"
	"github.com/quakewatch/quake-feed-aggregator/internal/aggregate"
	"github.com/quakewatch/quake-feed-aggregator/internal/config"
	"github.com/quakewatch/quake-feed-aggregator/internal/observability"
	"github.com/quakewatch/quake-feed-aggregator/internal/poller"
	"github.com/quakewatch/quake-feed-aggregator/internal/snapshot"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	fetcher := usgs.NewClient(cfg.FeedBaseURL, cfg.FeedFallbackURL, cfg.FetchTimeout, logger)
	store := snapshot.New()

	// Alert publishing is feature-flagged via KAFKA_BROKERS / KAFKA_ALERTS_ENABLED.
	var publisher poller.AlertPublisher
	var alertWriter *kafkaadapter.AlertWriter
	if cfg.AlertsEnabled {
		alertWriter = kafkaadapter.NewAlertWriter(cfg, logger)
		publisher = alertWriter
		logger.Info("major-event alerts enabled", "topic", cfg.KafkaAlertTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("major-event alerts disabled")
	}

	opts := aggregate.SummaryOptions{
		SampleSize:        cfg.SampleSize,
		PriorityThreshold: cfg.MajorThreshold,
	}
	p := poller.New(fetcher, store, publisher, logger, metrics, nil, cfg.PollInterval, opts)

	srv := httpadapter.NewServer(cfg.HTTPAddr, store, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start feed poller.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("poller error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if alertWriter != nil {
		if err := alertWriter.Close(); err != nil {
			logger.Error("alert writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
