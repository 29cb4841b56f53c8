package calendar

import (
	"strings"
	"testing"
	"time"
)

func TestWeeklyRule(t *testing.T) {
	until := time.Date(2025, 12, 19, 23, 59, 59, 0, time.UTC)

	rule, err := WeeklyRule(until)
	if err != nil {
		t.Fatalf("WeeklyRule() returned an error: %v", err)
	}

	if !strings.Contains(rule, "FREQ=WEEKLY") {
		t.Errorf("Expected a weekly rule, got %q", rule)
	}
	if !strings.Contains(rule, "UNTIL=20251219T235959Z") {
		t.Errorf("Expected UNTIL in UTC, got %q", rule)
	}
}

func TestWeeklyRule_ConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	until := time.Date(2025, 12, 20, 1, 59, 59, 0, loc)

	rule, err := WeeklyRule(until)
	if err != nil {
		t.Fatalf("WeeklyRule() returned an error: %v", err)
	}

	if !strings.Contains(rule, "UNTIL=20251219T235959Z") {
		t.Errorf("Expected the local end bound rendered in UTC, got %q", rule)
	}
}
