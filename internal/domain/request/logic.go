package request

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPeriod = errors.New("period end before period start")
	ErrInvalidHours  = errors.New("hourly request needs a positive hour count")
)

// DayCount returns the inclusive whole-day cost of a period:
// ceil(|end - start| in days) + 1, so a single-day request costs one day.
func DayCount(start, end time.Time) (decimal.Decimal, error) {
	if end.Before(start) {
		return decimal.Zero, ErrInvalidPeriod
	}
	days := math.Ceil(end.Sub(start).Hours()/24) + 1
	return decimal.NewFromFloat(days), nil
}

// Cost computes the day cost recorded on a request at submission time. This
// is the single place the cost formula runs; the reconciler trusts the stored
// value. Hourly requests convert to fractional days using the configured
// workday length.
func Cost(payload NewRequest, workdayHours float64) (decimal.Decimal, error) {
	if payload.IsHourly {
		if payload.Hours == nil || !payload.Hours.IsPositive() {
			return decimal.Zero, ErrInvalidHours
		}
		return payload.Hours.Div(decimal.NewFromFloat(workdayHours)), nil
	}
	return DayCount(payload.PeriodStart, payload.PeriodEnd)
}
