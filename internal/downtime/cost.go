package downtime

import (
	"time"

	"github.com/shopspring/decimal"
)

// HourlyRate is the system-wide downtime cost in currency units per
// hour.
const HourlyRate = 100

var hourlyRate = decimal.NewFromInt(HourlyRate)

// Cost prices one downtime window: hours elapsed times the fixed rate.
// Always recomputed on read, never persisted. An end before start
// yields a negative cost; durations are deliberately unguarded.
func Cost(start, end time.Time) decimal.Decimal {
	hours := decimal.NewFromFloat(end.Sub(start).Hours())
	return hours.Mul(hourlyRate)
}

// EventCost parses the stored timestamps and prices the event. Events
// with an unparseable or missing timestamp cost nothing, mirroring how
// incomplete events are skipped in aggregation.
func EventCost(startTime, endTime string) decimal.Decimal {
	start, err := time.Parse(time.RFC3339, startTime)
	if err != nil {
		return decimal.Zero
	}
	end, err := time.Parse(time.RFC3339, endTime)
	if err != nil {
		return decimal.Zero
	}
	return Cost(start, end)
}
