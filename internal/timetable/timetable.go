package timetable

import (
	"context"
	"strings"
	"time"
)

// Row is one timetable record: a weekly class described by its day, subject,
// room, and start/end time cells. StartRaw and EndRaw stay untyped because
// sheet cells surface as strings, numbers, or native time values depending on
// cell formatting; the schedule package normalizes them.
type Row struct {
	// Num is the 1-based sheet row number, matching what users see.
	Num      int
	Day      string
	Subject  string
	Room     string
	StartRaw any
	EndRaw   any
}

// Empty reports whether every cell in the row is empty.
func (r Row) Empty() bool {
	return strings.TrimSpace(r.Day) == "" &&
		strings.TrimSpace(r.Subject) == "" &&
		strings.TrimSpace(r.Room) == "" &&
		emptyCell(r.StartRaw) &&
		emptyCell(r.EndRaw)
}

// HasTimes reports whether both time cells are present and of an accepted
// type (text, number, or a native time value).
func (r Row) HasTimes() bool {
	return timeCellPresent(r.StartRaw) && timeCellPresent(r.EndRaw)
}

func emptyCell(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func timeCellPresent(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) != ""
	case float64, int, int64:
		return true
	case time.Time:
		return true
	default:
		return false
	}
}

// Source provides the timetable rows and the two designated term-bound cells.
// The first row is conventionally a header; skipping it is the engine's job,
// not the adapter's.
type Source interface {
	Rows(ctx context.Context) ([]Row, error)
	TermBounds(ctx context.Context) (start, end string, err error)
}
