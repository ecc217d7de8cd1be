package engine

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, date string) time.Time {
	t.Helper()
	parsed, err := parseDate(date)
	if err != nil {
		t.Fatalf("bad test date %q: %v", date, err)
	}
	return parsed
}

func TestAnticipationFactor(t *testing.T) {
	e := newTestEngine(t)
	now := mustDate(t, "2025-07-01")

	tests := []struct {
		eventDate string
		want      float64
	}{
		{"2025-07-01", 1.20}, // event today
		{"2025-07-02", 1.20}, // 1 day out
		{"2025-07-03", 1.15},
		{"2025-07-04", 1.15}, // 3 days out
		{"2025-07-08", 1.10}, // 7 days out
		{"2025-07-15", 1.05}, // 14 days out
		{"2025-07-16", 1.05}, // 15 days out
		{"2025-07-31", 1.02}, // 30 days out
		{"2025-08-01", 1.0},  // beyond every threshold
		{"2025-06-30", 1.0},  // already passed
	}
	for _, tt := range tests {
		got := e.anticipationFactor(mustDate(t, tt.eventDate), now)
		if got != tt.want {
			t.Errorf("anticipationFactor(%s) = %v, want %v", tt.eventDate, got, tt.want)
		}
	}
}

func TestAnticipationFactorNonIncreasing(t *testing.T) {
	e := newTestEngine(t)
	now := mustDate(t, "2025-07-01")

	prev := 10.0
	for days := 0; days <= 40; days++ {
		got := e.anticipationFactor(now.AddDate(0, 0, days), now)
		if got > prev {
			t.Fatalf("anticipation factor increased at %d days out: %v > %v", days, got, prev)
		}
		prev = got
	}
}

func TestWeekendFactor(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		date    string
		factor  float64
		weekend bool
	}{
		{"2025-07-14", 1.0, false},  // Monday
		{"2025-07-15", 1.0, false},  // Tuesday
		{"2025-07-17", 1.0, false},  // Thursday
		{"2025-07-18", 1.15, true},  // Friday
		{"2025-07-19", 1.15, true},  // Saturday
		{"2025-07-20", 1.15, true},  // Sunday
	}
	for _, tt := range tests {
		factor, weekend := e.weekendFactor(mustDate(t, tt.date))
		if factor != tt.factor || weekend != tt.weekend {
			t.Errorf("weekendFactor(%s) = (%v, %v), want (%v, %v)", tt.date, factor, weekend, tt.factor, tt.weekend)
		}
	}
}
