package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime_LiteralHours(t *testing.T) {
	tests := []struct {
		input string
		hour  int
		min   int
	}{
		{"0:15", 0, 15},
		{"8:00", 8, 0},
		{"9:30", 9, 30},
		{"10:45", 10, 45},
		{"11:05", 11, 5},
		{"12:00", 12, 0},
		{"13:00", 13, 0},
		{"23:59", 23, 59},
	}

	for _, tt := range tests {
		got, err := ParseTime(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.hour, got.Hour, "input %q", tt.input)
		assert.Equal(t, tt.min, got.Minute, "input %q", tt.input)
	}
}

func TestParseTime_AfternoonInference(t *testing.T) {
	// Hours 1-7 carry no AM/PM marker in the timetable but are always
	// afternoon classes.
	tests := []struct {
		input string
		hour  int
	}{
		{"1:00", 13},
		{"2:00", 14},
		{"3:30", 15},
		{"4:00", 16},
		{"5:45", 17},
		{"6:10", 18},
		{"7:00", 19},
	}

	for _, tt := range tests {
		got, err := ParseTime(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.hour, got.Hour, "input %q", tt.input)
	}
}

func TestParseTime_StripsDecoration(t *testing.T) {
	got, err := ParseTime(" 9:00 AM ")
	require.NoError(t, err)
	assert.Equal(t, ClockTime{Hour: 9, Minute: 0}, got)

	// Trailing colon left over after stripping is dropped.
	got, err = ParseTime("10:30:")
	require.NoError(t, err)
	assert.Equal(t, ClockTime{Hour: 10, Minute: 30}, got)
}

func TestParseTime_NativeTimeValue(t *testing.T) {
	// Native time values are trusted as-is: a cell holding 02:00 stays 02:00,
	// the afternoon inference never applies.
	cell := time.Date(1899, 12, 30, 2, 0, 0, 0, time.Local)

	got, err := ParseTime(cell)
	require.NoError(t, err)
	assert.Equal(t, ClockTime{Hour: 2, Minute: 0}, got)
}

func TestParseTime_FormatErrors(t *testing.T) {
	for _, input := range []string{"", "900", "9", "1:2:3", "::", "noon"} {
		_, err := ParseTime(input)
		require.Error(t, err, "input %q", input)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, "input %q", input)
	}
}

func TestParseTime_ValueErrors(t *testing.T) {
	for _, input := range []string{"13:75", "24:00", "99:99", ":30"} {
		_, err := ParseTime(input)
		require.Error(t, err, "input %q", input)
		assert.ErrorIs(t, err, ErrInvalidTimeValue, "input %q", input)
	}
}

func TestParseTime_NumericCell(t *testing.T) {
	// A bare number has no colon after coercion to text.
	_, err := ParseTime(930)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}
