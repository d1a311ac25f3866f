package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeRangeRejectsInvertedRange(t *testing.T) {
	from := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := NewTimeRange(from, from.Add(-time.Second))
	require.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestNewTimeRangeAllowsZeroLength(t *testing.T) {
	from := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	timeRange, err := NewTimeRange(from, from)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), timeRange.Duration())
}

func TestTimeRangeFormat(t *testing.T) {
	timeRange := mustTimeRange(t, "2026-03-01 09:00:00", "2026-03-01 09:05:00")

	assert.Equal(t, "2026-03-01 09:00:00 - 2026-03-01 09:05:00", timeRange.Format())
}

func TestTimeRangeFormatNormalizesToUTC(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	timeRange := TimeRange{
		From: time.Date(2026, 3, 1, 10, 0, 0, 0, berlin),
		To:   time.Date(2026, 3, 1, 10, 5, 0, 0, berlin),
	}

	assert.Equal(t, "2026-03-01 09:00:00 - 2026-03-01 09:05:00", timeRange.Format())
}

func TestTimeRangeFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want string
	}{
		{name: "minutes and seconds", from: "2026-03-01 09:00:00", to: "2026-03-01 09:04:30", want: "0d 0h 4m 30s"},
		{name: "spanning days", from: "2026-03-01 09:00:00", to: "2026-03-02 10:01:02", want: "1d 1h 1m 2s"},
		{name: "zero", from: "2026-03-01 09:00:00", to: "2026-03-01 09:00:00", want: "0d 0h 0m 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustTimeRange(t, tt.from, tt.to).FormatDuration())
		})
	}
}

func TestTimeRangeRoundToQuarterHour(t *testing.T) {
	timeRange := mustTimeRange(t, "2026-03-01 09:07:00", "2026-03-01 09:38:00")

	rounded := timeRange.RoundToQuarterHour()

	assert.Equal(t, "2026-03-01 09:00:00 - 2026-03-01 09:45:00", rounded.Format())
}

func TestTimeRangeContains(t *testing.T) {
	outer := mustTimeRange(t, "2026-03-01 00:00:00", "2026-03-02 00:00:00")

	assert.True(t, outer.Contains(mustTimeRange(t, "2026-03-01 09:00:00", "2026-03-01 10:00:00")))
	assert.True(t, outer.Contains(outer))
	assert.False(t, outer.Contains(mustTimeRange(t, "2026-03-01 23:00:00", "2026-03-02 01:00:00")))
	assert.False(t, outer.Contains(mustTimeRange(t, "2026-02-28 23:00:00", "2026-03-01 01:00:00")))
}
