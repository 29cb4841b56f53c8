package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTermWindow indicates a missing or unparsable term bound. The
// whole run aborts on this error, before any calendar mutation.
var ErrInvalidTermWindow = errors.New("invalid term window")

// TermWindow is the inclusive date range within which class series are managed.
type TermWindow struct {
	Start time.Time
	End   time.Time
}

// dateLayouts are the display formats the term-bound cells are known to use.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// BuildTermWindow parses the two term-bound cells into a TermWindow. The end
// bound is advanced to the last instant of its calendar day so the range is
// inclusive.
//
// A start bound after the end bound is not rejected: such a window is empty,
// so the delete pass finds nothing and every row's first occurrence falls
// outside it. The run becomes a no-op rather than an error.
func BuildTermWindow(startRaw, endRaw string) (TermWindow, error) {
	start, err := parseDisplayDate(startRaw)
	if err != nil {
		return TermWindow{}, fmt.Errorf("%w: start bound %q: %v", ErrInvalidTermWindow, startRaw, err)
	}

	end, err := parseDisplayDate(endRaw)
	if err != nil {
		return TermWindow{}, fmt.Errorf("%w: end bound %q: %v", ErrInvalidTermWindow, endRaw, err)
	}

	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), end.Location())

	return TermWindow{Start: start, End: end}, nil
}

func parseDisplayDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty")
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
