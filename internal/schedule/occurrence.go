package schedule

import (
	"fmt"
	"time"
)

// Occurrence is the first concrete start/end instant of a recurring class row.
// The weekly series generated from the row begins here.
type Occurrence struct {
	Start time.Time
	End   time.Time
}

// AnchorPolicy selects the reference date from which a row's first occurrence
// is computed. It is a deployment configuration choice, not a per-run branch.
type AnchorPolicy string

const (
	// AnchorRolling anchors on the moment of invocation, so the first
	// occurrence is always the next upcoming matching weekday.
	AnchorRolling AnchorPolicy = "rolling"

	// AnchorTerm anchors on the term start date, so the first occurrence is
	// the first matching weekday on or after the term begins.
	AnchorTerm AnchorPolicy = "term"
)

// Valid reports whether p is a known policy name.
func (p AnchorPolicy) Valid() bool {
	return p == AnchorRolling || p == AnchorTerm
}

// Anchor returns the reference date for the policy.
func (p AnchorPolicy) Anchor(clock Clock, window TermWindow) time.Time {
	if p == AnchorTerm {
		return window.Start
	}
	return clock.Now()
}

// ComputeOccurrence resolves a row's day and time cells against an anchor
// date. The occurrence date is the first day on or after the anchor whose
// weekday matches; the anchor's own day counts, so the offset can be zero.
// Seconds and finer are zeroed.
func ComputeOccurrence(day string, startRaw, endRaw any, anchor time.Time) (Occurrence, error) {
	weekday, err := ResolveWeekday(day)
	if err != nil {
		return Occurrence{}, err
	}

	start, err := ParseTime(startRaw)
	if err != nil {
		return Occurrence{}, fmt.Errorf("start time: %w", err)
	}

	end, err := ParseTime(endRaw)
	if err != nil {
		return Occurrence{}, fmt.Errorf("end time: %w", err)
	}

	offset := (int(weekday) - int(anchor.Weekday()) + 7) % 7
	date := anchor.AddDate(0, 0, offset)

	return Occurrence{
		Start: atClockTime(date, start),
		End:   atClockTime(date, end),
	}, nil
}

func atClockTime(date time.Time, c ClockTime) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, date.Location())
}
