// Package scheduler invokes retention runs on a cron cadence.
//
// The scheduler owns invocation only: one orchestration pass per tick, with
// an overlap guard so two runs never execute concurrently. Retrying a failed
// policy is deliberately left to the next scheduled run.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// RunFunc performs one orchestration pass. The scheduler logs the returned
// error and waits for the next tick; it never retries within a tick.
type RunFunc func(ctx context.Context) error

// Scheduler runs retention passes on a cron schedule.
type Scheduler struct {
	schedule string
	run      RunFunc
	cron     *cron.Cron
	logger   *slog.Logger

	mu       sync.Mutex
	running  bool
	inFlight atomic.Bool
}

// New creates a scheduler that invokes run according to the cron expression.
// An empty schedule yields an inert scheduler: Start returns immediately
// without error and nothing ever fires.
func New(schedule string, run RunFunc, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		schedule: schedule,
		run:      run,
		cron:     cron.New(),
		logger:   logger.With("component", "scheduler"),
	}
}

// Start begins scheduled execution.
//
// Common cron expressions:
//   - "0 3 * * *"    - Daily at 3 AM
//   - "0 */6 * * *"  - Every 6 hours
//   - "0 0 * * 0"    - Weekly on Sunday at midnight
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("schedule not configured, scheduler inactive")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.tick(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule retention run: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// tick executes one scheduled pass. If the previous pass is still in flight
// the tick is skipped; two runs must never overlap.
func (s *Scheduler) tick(ctx context.Context) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Warn("previous retention run still in flight, skipping tick")
		return
	}
	defer s.inFlight.Store(false)

	s.logger.Info("starting scheduled retention run")

	if err := s.run(ctx); err != nil {
		s.logger.Error("scheduled retention run failed", "error", err)
		return
	}

	s.logger.Debug("scheduled retention run completed")
}

// Stop stops the scheduler and waits for any running pass to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done() // Wait for running jobs to finish
		s.running = false
		s.logger.Info("scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled run time, or nil when inactive.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return nil
	}

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
