package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeFormat indicates a time cell that does not reduce to a
	// single H:MM or HH:MM pair.
	ErrInvalidTimeFormat = errors.New("invalid time format")

	// ErrInvalidTimeValue indicates an hour outside 0-23 or a minute outside 0-59.
	ErrInvalidTimeValue = errors.New("invalid time value")
)

// ClockTime is a wall-clock hour/minute pair with no date attached.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseTime normalizes a timetable cell into a ClockTime. Depending on how the
// sheet cell is formatted, the value arrives as a string ("9:00", "1:30 PM"),
// a number, or a native time value.
//
// Native time values already carry discrete hour/minute components and are
// taken as-is. Anything else is coerced to text and parsed under the
// timetable's convention: afternoon classes are written without an AM/PM
// marker, and no class starts between 1:00 and 7:59 in the morning, so hours
// 1-7 shift to 13-19. Hours 0 and 8-23 are literal.
func ParseTime(raw any) (ClockTime, error) {
	if t, ok := raw.(time.Time); ok {
		return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
	}

	text := strings.TrimSpace(fmt.Sprint(raw))
	cleaned := stripTimeText(text)

	parts := strings.Split(cleaned, ":")
	if len(parts) != 2 {
		return ClockTime{}, fmt.Errorf("%w: %q (expected H:MM or HH:MM)", ErrInvalidTimeFormat, text)
	}

	hour, errH := strconv.Atoi(parts[0])
	minute, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidTimeValue, text)
	}

	if hour >= 1 && hour <= 7 {
		hour += 12
	}

	return ClockTime{Hour: hour, Minute: minute}, nil
}

// stripTimeText removes every character except digits and colons, then drops a
// trailing colon, so "9:00 AM" becomes "9:00".
func stripTimeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ':' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSuffix(b.String(), ":")
}
