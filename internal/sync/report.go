package sync

import "log"

// RowSkip records why one timetable row produced no series.
type RowSkip struct {
	// Row is the 1-based sheet row number.
	Row    int
	Reason string
}

// Report summarizes one sync run. Item-level failures inside the delete and
// create passes are counted here rather than raised; only Fatal means the run
// aborted before any calendar mutation.
type Report struct {
	RowsProcessed  int
	Skipped        []RowSkip
	SeriesCreated  int
	SeriesDeleted  int
	EventsDeleted  int
	DeleteFailures int
	CreateFailures int
	Fatal          error
}

func (r *Report) skip(row int, reason string) {
	r.Skipped = append(r.Skipped, RowSkip{Row: row, Reason: reason})
	log.Printf("Skipping row %d: %s", row, reason)
}

// SkipCount returns the number of rows skipped during the create pass.
func (r *Report) SkipCount() int {
	return len(r.Skipped)
}
