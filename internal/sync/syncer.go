package sync

import (
	"context"
	"fmt"
	"log"
	"strings"

	"classcal/internal/calendar"
	"classcal/internal/schedule"
	"classcal/internal/timetable"
)

// Syncer replaces the calendar's contents inside the academic term window
// with weekly series generated from the timetable, on every run. The sync is
// stateless: no identity is kept between a row and its series across runs, so
// repeating a run with unchanged inputs reproduces the same set of series.
//
// A run is single-threaded and run-to-completion. Nothing guards against two
// runs mutating the same calendar concurrently; the trigger cadence is
// responsible for keeping runs apart.
type Syncer struct {
	table  timetable.Source
	cal    calendar.Client
	policy schedule.AnchorPolicy
	clock  schedule.Clock
}

// NewSyncer creates a Syncer. A nil clock falls back to the real one.
func NewSyncer(table timetable.Source, cal calendar.Client, policy schedule.AnchorPolicy, clock schedule.Clock) *Syncer {
	if clock == nil {
		clock = schedule.RealClock{}
	}
	if !policy.Valid() {
		policy = schedule.AnchorRolling
	}

	return &Syncer{
		table:  table,
		cal:    cal,
		policy: policy,
		clock:  clock,
	}
}

// Run executes one full delete-then-recreate cycle. Fatal problems
// (unreadable sheet, missing or unparsable term bounds, a calendar that
// cannot be listed) abort the run before any series is created. Failures on
// individual rows, events, or series are logged, counted in the report, and
// do not stop the passes.
func (s *Syncer) Run(ctx context.Context) (*Report, error) {
	log.Println("Starting sync...")
	report := &Report{}

	startRaw, endRaw, err := s.table.TermBounds(ctx)
	if err != nil {
		report.Fatal = fmt.Errorf("failed to read term bounds: %w", err)
		return report, report.Fatal
	}

	window, err := schedule.BuildTermWindow(startRaw, endRaw)
	if err != nil {
		report.Fatal = err
		return report, report.Fatal
	}

	rows, err := s.table.Rows(ctx)
	if err != nil {
		report.Fatal = fmt.Errorf("failed to read timetable rows: %w", err)
		return report, report.Fatal
	}

	log.Printf("Term window: %s to %s",
		window.Start.Format("2006-01-02"), window.End.Format("2006-01-02"))

	// The two passes are strictly sequential: creation never starts until
	// every deletion has been attempted. If the calendar cannot be listed at
	// all (missing or unreachable), the run aborts here so the create pass
	// never piles new series on top of undeleted ones.
	if err := s.deleteExisting(ctx, window, report); err != nil {
		report.Fatal = err
		return report, report.Fatal
	}
	s.createSeries(ctx, rows, window, report)

	log.Printf("Sync complete: %d series created, %d series and %d single events deleted, %d rows skipped",
		report.SeriesCreated, report.SeriesDeleted, report.EventsDeleted, report.SkipCount())

	return report, nil
}

// deleteExisting wipes every event and series overlapping the term window.
// Deletion is best-effort per item, not transactional, but a failure to list
// the calendar at all is returned as fatal.
func (s *Syncer) deleteExisting(ctx context.Context, window schedule.TermWindow, report *Report) error {
	events, err := s.cal.FindEvents(ctx, window.Start, window.End)
	if err != nil {
		return fmt.Errorf("failed to list events for deletion: %w", err)
	}

	log.Printf("Found %d event instances in the term window to process for deletion", len(events))

	// Deleting a series through any one instance removes the whole series, so
	// each distinct series id is attempted once.
	deletedSeries := make(map[string]bool)

	for _, event := range events {
		if event.SeriesID != "" {
			if deletedSeries[event.SeriesID] {
				continue
			}
			deletedSeries[event.SeriesID] = true

			if err := s.cal.DeleteSeries(ctx, event.SeriesID); err != nil {
				log.Printf("Warning: failed to delete series %s (%q): %v", event.SeriesID, event.Title, err)
				report.DeleteFailures++
				continue
			}
			report.SeriesDeleted++
			continue
		}

		if err := s.cal.DeleteEvent(ctx, event.ID); err != nil {
			log.Printf("Warning: failed to delete event %s (%q): %v", event.ID, event.Title, err)
			report.DeleteFailures++
			continue
		}
		report.EventsDeleted++
	}

	return nil
}

// createSeries walks the timetable rows in source order and creates one
// weekly series per valid row. Row 1 is the header and is never processed.
func (s *Syncer) createSeries(ctx context.Context, rows []timetable.Row, window schedule.TermWindow, report *Report) {
	anchor := s.policy.Anchor(s.clock, window)

	for i, row := range rows {
		if i == 0 {
			continue
		}
		report.RowsProcessed++

		if row.Empty() {
			report.skip(row.Num, "row is empty")
			continue
		}
		if reason := validateRow(row); reason != "" {
			report.skip(row.Num, reason)
			continue
		}

		occ, err := schedule.ComputeOccurrence(row.Day, row.StartRaw, row.EndRaw, anchor)
		if err != nil {
			report.skip(row.Num, err.Error())
			continue
		}

		if !occ.End.After(occ.Start) {
			report.skip(row.Num, fmt.Sprintf("end time %s is not after start time %s",
				occ.End.Format("15:04"), occ.Start.Format("15:04")))
			continue
		}
		if occ.Start.After(window.End) {
			report.skip(row.Num, "first occurrence falls after the term end")
			continue
		}

		subject := strings.TrimSpace(row.Subject)
		req := calendar.SeriesRequest{
			Title:       subject,
			Start:       occ.Start,
			End:         occ.End,
			Until:       window.End,
			Location:    strings.TrimSpace(row.Room),
			Description: "Scheduled class for " + subject,
		}

		if _, err := s.cal.CreateWeeklySeries(ctx, req); err != nil {
			log.Printf("Warning: failed to create series for %q (row %d): %v", subject, row.Num, err)
			report.CreateFailures++
			continue
		}

		log.Printf("Created weekly series %q (row %d), first occurrence %s",
			subject, row.Num, occ.Start.Format("2006-01-02 15:04"))
		report.SeriesCreated++
	}
}

// validateRow checks field presence and type. It returns an empty string for
// an actionable row, otherwise the skip reason.
func validateRow(row timetable.Row) string {
	if strings.TrimSpace(row.Day) == "" {
		return "day is missing or empty"
	}
	if strings.TrimSpace(row.Subject) == "" {
		return "subject is missing or empty"
	}
	if !row.HasTimes() {
		return "start or end time is missing or invalid"
	}
	return ""
}
