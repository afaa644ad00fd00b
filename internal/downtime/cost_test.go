package downtime

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCost_HourlyRate(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 2, 30, 0, 0, time.UTC)

	// 2h30m at 100/hour
	require.True(t, Cost(start, end).Equal(decimal.NewFromInt(250)))
}

func TestCost_ZeroDuration(t *testing.T) {
	at := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	require.True(t, Cost(at, at).IsZero())
}

func TestCost_NegativeDurationUnguarded(t *testing.T) {
	start := time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)

	// End before start is not validated; the cost goes negative.
	require.True(t, Cost(start, end).Equal(decimal.NewFromInt(-100)))
}

func TestEventCost_ParsesStoredTimestamps(t *testing.T) {
	cost := EventCost("2024-01-01T00:00:00Z", "2024-01-01T02:30:00Z")
	require.True(t, cost.Equal(decimal.NewFromInt(250)))

	require.True(t, EventCost("", "2024-01-01T02:30:00Z").IsZero())
	require.True(t, EventCost("2024-01-01T00:00:00Z", "not-a-time").IsZero())
}
