package trigger

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Job is the sync entry point invoked on each tick. It takes no input and
// returns nothing the scheduler consumes.
type Job func(ctx context.Context)

// Scheduler owns the periodic sync trigger. It wraps a cron runner so the
// trigger can be registered, removed, and shut down cleanly.
type Scheduler struct {
	cron    *cron.Cron
	entries []cron.EntryID
}

// NewScheduler creates an idle scheduler. Nothing runs until Start.
func NewScheduler() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// Schedule registers the job under a standard 5-field cron expression,
// e.g. "0 21 * * SUN" for Sunday 21:00.
func (s *Scheduler) Schedule(ctx context.Context, spec string, job Job) error {
	id, err := s.cron.AddFunc(spec, func() {
		job(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	s.entries = append(s.entries, id)
	log.Printf("Registered sync trigger with schedule %q", spec)
	return nil
}

// RemoveAll unregisters every trigger added through this scheduler.
func (s *Scheduler) RemoveAll() {
	for _, id := range s.entries {
		s.cron.Remove(id)
	}
	log.Printf("Removed %d trigger(s)", len(s.entries))
	s.entries = nil
}

// Entries returns the number of registered triggers.
func (s *Scheduler) Entries() int {
	return len(s.entries)
}

// Start begins firing registered triggers in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the trigger loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
