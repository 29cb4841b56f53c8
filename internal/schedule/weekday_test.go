package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWeekday_CanonicalNames(t *testing.T) {
	want := map[string]time.Weekday{
		"Sunday":    time.Sunday,
		"Monday":    time.Monday,
		"Tuesday":   time.Tuesday,
		"Wednesday": time.Wednesday,
		"Thursday":  time.Thursday,
		"Friday":    time.Friday,
		"Saturday":  time.Saturday,
	}

	for name, day := range want {
		got, err := ResolveWeekday(name)
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, day, got, "name %q", name)
	}
}

func TestResolveWeekday_Normalization(t *testing.T) {
	for _, name := range []string{"monday", "MONDAY", "  Monday  ", "mOnDaY"} {
		got, err := ResolveWeekday(name)
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, time.Monday, got, "name %q", name)
	}
}

func TestResolveWeekday_Invalid(t *testing.T) {
	for _, name := range []string{"", "  ", "Funday", "Mon", "Lundi"} {
		_, err := ResolveWeekday(name)
		assert.ErrorIs(t, err, ErrInvalidWeekday, "name %q", name)
	}
}
