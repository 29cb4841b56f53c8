package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock returns a constant instant from Now().
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func TestComputeOccurrence_SameWeekdayUsesAnchor(t *testing.T) {
	// 2025-09-01 is a Monday. A Monday class anchored on it starts that very
	// day, not seven days later.
	anchor := time.Date(2025, 9, 1, 12, 0, 0, 0, time.Local)

	occ, err := ComputeOccurrence("Monday", "9:00", "10:00", anchor)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 9, 1, 9, 0, 0, 0, time.Local), occ.Start)
	assert.Equal(t, time.Date(2025, 9, 1, 10, 0, 0, 0, time.Local), occ.End)
}

func TestComputeOccurrence_ForwardOffset(t *testing.T) {
	// Anchored on a Monday, a Wednesday class lands two days out and a Sunday
	// class six days out. Never backwards.
	anchor := time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)

	occ, err := ComputeOccurrence("Wednesday", "9:00", "10:00", anchor)
	require.NoError(t, err)
	assert.Equal(t, 3, occ.Start.Day())

	occ, err = ComputeOccurrence("Sunday", "9:00", "10:00", anchor)
	require.NoError(t, err)
	assert.Equal(t, 7, occ.Start.Day())
}

func TestComputeOccurrence_AfternoonShift(t *testing.T) {
	anchor := time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)

	occ, err := ComputeOccurrence("Tuesday", "2:00", "4:00", anchor)
	require.NoError(t, err)

	assert.Equal(t, 14, occ.Start.Hour())
	assert.Equal(t, 16, occ.End.Hour())
}

func TestComputeOccurrence_Errors(t *testing.T) {
	anchor := time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)

	_, err := ComputeOccurrence("Someday", "9:00", "10:00", anchor)
	assert.ErrorIs(t, err, ErrInvalidWeekday)

	_, err = ComputeOccurrence("Monday", "nine", "10:00", anchor)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	_, err = ComputeOccurrence("Monday", "9:00", "13:75", anchor)
	assert.ErrorIs(t, err, ErrInvalidTimeValue)
}

func TestComputeOccurrence_ZeroesSeconds(t *testing.T) {
	anchor := time.Date(2025, 9, 1, 13, 14, 15, 16, time.Local)

	occ, err := ComputeOccurrence("Monday", "9:00", "10:00", anchor)
	require.NoError(t, err)
	assert.Zero(t, occ.Start.Second())
	assert.Zero(t, occ.Start.Nanosecond())
}

func TestAnchorPolicy(t *testing.T) {
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.Local)
	clock := fixedClock{now: now}
	window := TermWindow{
		Start: time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local),
		End:   time.Date(2025, 12, 19, 23, 59, 59, 0, time.Local),
	}

	assert.Equal(t, now, AnchorRolling.Anchor(clock, window))
	assert.Equal(t, window.Start, AnchorTerm.Anchor(clock, window))

	assert.True(t, AnchorRolling.Valid())
	assert.True(t, AnchorTerm.Valid())
	assert.False(t, AnchorPolicy("sometimes").Valid())
}
