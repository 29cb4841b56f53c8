package calendar

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// WeeklyRule renders the recurrence rule for a weekly series that ends at
// until (inclusive). The UNTIL timestamp is expressed in UTC as RFC 5545
// requires.
func WeeklyRule(until time.Time) (string, error) {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:  rrule.WEEKLY,
		Until: until.UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to build weekly rule: %w", err)
	}

	return rule.String(), nil
}
