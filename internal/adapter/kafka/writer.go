// Package kafka publishes major-event alerts to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/quakewatch/quake-feed-aggregator/internal/config"
	"github.com/quakewatch/quake-feed-aggregator/internal/domain"
)

// AlertWriter produces major-event alerts to the configured topic.
// It implements poller.AlertPublisher.
type AlertWriter struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewAlertWriter creates a Kafka producer for the alert topic.
func NewAlertWriter(cfg *config.Config, logger *slog.Logger) *AlertWriter {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAlertTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &AlertWriter{writer: w, logger: logger}
}

// PublishMajor serializes and publishes the updated major pair. Called only
// when consolidation produced a new latest event.
func (w *AlertWriter) PublishMajor(ctx context.Context, pair domain.MajorPair) error {
	msg, err := serializeAlert(pair)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *AlertWriter) Close() error {
	return w.writer.Close()
}

// alertPayload is the wire shape of a major-event alert.
type alertPayload struct {
	Latest         *domain.Event `json:"latest"`
	Previous       *domain.Event `json:"previous,omitempty"`
	IntervalMillis *int64        `json:"interval_millis,omitempty"`
	Severity       string        `json:"severity,omitempty"`
}

// serializeAlert marshals a major pair into a Kafka message keyed by the
// latest event's ID.
func serializeAlert(pair domain.MajorPair) (kafkago.Message, error) {
	if pair.Latest == nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert: no latest major event")
	}

	payload := alertPayload{
		Latest:         pair.Latest,
		Previous:       pair.Previous,
		IntervalMillis: pair.IntervalMillis(),
		Severity:       domain.Severity(*pair.Latest),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert: %w", err)
	}

	headers := []kafkago.Header{
		{Key: "severity", Value: []byte(payload.Severity)},
	}
	if m, ok := pair.Latest.Mag(); ok {
		headers = append(headers, kafkago.Header{
			Key:   "magnitude",
			Value: []byte(strconv.FormatFloat(m, 'f', -1, 64)),
		})
	}

	return kafkago.Message{
		Key:     []byte(pair.Latest.ID),
		Value:   data,
		Headers: headers,
	}, nil
}
