package calendar

import (
	"context"
	"time"
)

// Event references one calendar entry inside the term window, as seen by the
// delete pass. SeriesID is empty for single (non-recurring) events; for an
// instance of a recurring series it identifies the series, and deleting the
// series through any one instance removes all of them.
type Event struct {
	ID       string
	SeriesID string
	Title    string
	Start    time.Time
	End      time.Time
}

// SeriesRequest describes one weekly-recurring class series to create.
type SeriesRequest struct {
	Title string
	Start time.Time
	End   time.Time

	// Until is the inclusive last instant of the recurrence (term end).
	Until time.Time

	Location    string
	Description string
}

// Client is the calendar surface the reconciliation engine depends on.
// Implementations exist for Google Calendar and CalDAV servers.
type Client interface {
	// FindEvents returns every event instance overlapping [start, end].
	FindEvents(ctx context.Context, start, end time.Time) ([]Event, error)

	// DeleteEvent removes a single non-recurring event.
	DeleteEvent(ctx context.Context, id string) error

	// DeleteSeries removes a whole recurring series.
	DeleteSeries(ctx context.Context, seriesID string) error

	// CreateWeeklySeries creates a weekly-recurring series and returns its id.
	CreateWeeklySeries(ctx context.Context, req SeriesRequest) (string, error)
}
