package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quakewatch/quake-feed-aggregator/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HTTP_ADDR", "LOG_LEVEL", "LOG_FORMAT", "SHUTDOWN_TIMEOUT",
		"FEED_BASE_URL", "FEED_FALLBACK_URL", "FETCH_TIMEOUT", "POLL_INTERVAL",
		"MAJOR_THRESHOLD", "SAMPLE_SIZE",
		"KAFKA_BROKERS", "KAFKA_ALERT_TOPIC", "KAFKA_ALERTS_ENABLED",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary", cfg.FeedBaseURL)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, time.Minute, cfg.PollInterval)
	assert.Equal(t, 4.5, cfg.MajorThreshold)
	assert.Equal(t, 300, cfg.SampleSize)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "quake-major-alerts", cfg.KafkaAlertTopic)
	assert.False(t, cfg.AlertsEnabled)
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("POLL_INTERVAL", "30s")
	t.Setenv("MAJOR_THRESHOLD", "5.5")
	t.Setenv("SAMPLE_SIZE", "100")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, 5.5, cfg.MajorThreshold)
	assert.Equal(t, 100, cfg.SampleSize)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.AlertsEnabled)
}

func TestLoad_AlertsDisabledOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAFKA_BROKERS", "broker-1:9092")
	t.Setenv("KAFKA_ALERTS_ENABLED", "false")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.AlertsEnabled)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad poll interval", "POLL_INTERVAL", "soon"},
		{"negative poll interval", "POLL_INTERVAL", "-10s"},
		{"bad fetch timeout", "FETCH_TIMEOUT", "fast"},
		{"bad threshold", "MAJOR_THRESHOLD", "high"},
		{"zero threshold", "MAJOR_THRESHOLD", "0"},
		{"bad sample size", "SAMPLE_SIZE", "many"},
		{"zero sample size", "SAMPLE_SIZE", "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_AlertsWithoutBrokers(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAFKA_ALERTS_ENABLED", "true")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}
