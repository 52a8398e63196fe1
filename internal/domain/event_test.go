package domain_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quakewatch/quake-feed-aggregator/internal/domain"
)

func f64(v float64) *float64 { return &v }

func i64(v int64) *int64 { return &v }

func TestEventMag(t *testing.T) {
	tests := []struct {
		name   string
		mag    *float64
		want   float64
		wantOK bool
	}{
		{"nil", nil, 0, false},
		{"finite", f64(4.2), 4.2, true},
		{"zero", f64(0), 0, true},
		{"negative", f64(-0.3), -0.3, true},
		{"nan", f64(math.NaN()), 0, false},
		{"positive inf", f64(math.Inf(1)), 0, false},
		{"negative inf", f64(math.Inf(-1)), 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := domain.Event{Magnitude: tc.mag}.Mag()
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, m)
		})
	}
}

func TestEventWhen(t *testing.T) {
	_, ok := domain.Event{}.When()
	assert.False(t, ok)

	ms := int64(1755946800000)
	ts, ok := domain.Event{Time: i64(ms)}.When()
	require.True(t, ok)
	assert.Equal(t, ms, ts.UnixMilli())
	assert.Equal(t, time.UTC, ts.Location())
}

func TestMajorPairInterval(t *testing.T) {
	latest := domain.Event{ID: "a", Time: i64(8 * time.Hour.Milliseconds())}
	previous := domain.Event{ID: "b", Time: i64(2 * time.Hour.Milliseconds())}

	t.Run("both populated", func(t *testing.T) {
		p := domain.MajorPair{Latest: &latest, Previous: &previous}
		d, ok := p.Interval()
		require.True(t, ok)
		assert.Equal(t, 6*time.Hour, d)
		require.NotNil(t, p.IntervalMillis())
		assert.Equal(t, (6 * time.Hour).Milliseconds(), *p.IntervalMillis())
	})

	t.Run("missing previous", func(t *testing.T) {
		p := domain.MajorPair{Latest: &latest}
		_, ok := p.Interval()
		assert.False(t, ok)
		assert.Nil(t, p.IntervalMillis())
	})

	t.Run("untimestamped slot", func(t *testing.T) {
		bare := domain.Event{ID: "c"}
		p := domain.MajorPair{Latest: &latest, Previous: &bare}
		_, ok := p.Interval()
		assert.False(t, ok)
	})
}
