package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidWeekday indicates a day cell that is not one of the seven English
// weekday names.
var ErrInvalidWeekday = errors.New("invalid weekday")

var weekdayNames = map[string]time.Weekday{
	"SUNDAY":    time.Sunday,
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
}

// ResolveWeekday maps a day-name cell to its weekday. Matching is
// case-insensitive and ignores surrounding whitespace.
func ResolveWeekday(name string) (time.Weekday, error) {
	day, ok := weekdayNames[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, name)
	}
	return day, nil
}
