package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quakewatch/quake-feed-aggregator/internal/domain"
)

func f64(v float64) *float64 { return &v }

func i64(v int64) *int64 { return &v }

func TestSerializeAlert(t *testing.T) {
	latest := domain.Event{
		ID:        "us7000abcd",
		Magnitude: f64(6.4),
		Time:      i64(1755946800000),
		Place:     "25km E of Honshu, Japan",
	}
	previous := domain.Event{
		ID:        "us7000aaaa",
		Magnitude: f64(5.1),
		Time:      i64(1755918000000),
	}
	pair := domain.MajorPair{Latest: &latest, Previous: &previous}

	msg, err := serializeAlert(pair)
	require.NoError(t, err)

	assert.Equal(t, []byte("us7000abcd"), msg.Key)

	var payload alertPayload
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	require.NotNil(t, payload.Latest)
	assert.Equal(t, "us7000abcd", payload.Latest.ID)
	require.NotNil(t, payload.Previous)
	assert.Equal(t, "us7000aaaa", payload.Previous.ID)
	require.NotNil(t, payload.IntervalMillis)
	assert.Equal(t, int64(1755946800000-1755918000000), *payload.IntervalMillis)
	assert.Equal(t, "critical", payload.Severity)

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "critical", headers["severity"])
	assert.Equal(t, "6.4", headers["magnitude"])
}

func TestSerializeAlert_NoPrevious(t *testing.T) {
	latest := domain.Event{ID: "only", Magnitude: f64(4.8), Time: i64(1755946800000)}
	msg, err := serializeAlert(domain.MajorPair{Latest: &latest})
	require.NoError(t, err)

	var payload alertPayload
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Nil(t, payload.Previous)
	assert.Nil(t, payload.IntervalMillis)
	assert.Equal(t, "high", payload.Severity)
}

func TestSerializeAlert_MissingLatest(t *testing.T) {
	_, err := serializeAlert(domain.MajorPair{})
	assert.Error(t, err)
}
