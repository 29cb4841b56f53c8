package schedule

import "time"

// Clock abstracts time.Now() so the rolling anchor policy can be tested
// deterministically.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
