package request

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDayCountSingleDay(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	days, err := DayCount(day, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !days.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("expected 1 day, got %s", days)
	}
}

func TestDayCountInclusive(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	days, err := DayCount(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !days.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("expected 3 days, got %s", days)
	}
}

func TestDayCountPartialDayRoundsUp(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 11, 13, 0, 0, 0, time.UTC)

	days, err := DayCount(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !days.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("expected ceil to 3 days, got %s", days)
	}
}

func TestDayCountInvalidRange(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

	if _, err := DayCount(start, end); err == nil {
		t.Fatal("expected error for inverted range")
	}
}

func TestCostHourly(t *testing.T) {
	hours := decimal.NewFromInt(4)
	payload := NewRequest{IsHourly: true, Hours: &hours}

	cost, err := Cost(payload, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cost.Equal(decimal.NewFromFloat(0.5)) {
		t.Fatalf("expected 0.5 days, got %s", cost)
	}
}

func TestCostHourlyMissingHours(t *testing.T) {
	payload := NewRequest{IsHourly: true}
	if _, err := Cost(payload, 8); err == nil {
		t.Fatal("expected error for hourly request without hours")
	}
}
