package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

// TestScheduler_EmptyScheduleInert tests that an empty schedule starts
// without error and never fires.
func TestScheduler_EmptyScheduleInert(t *testing.T) {
	var calls atomic.Int32
	s := New("", func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, nil)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if s.IsRunning() {
		t.Error("inert scheduler reports running")
	}
	if s.NextRun() != nil {
		t.Error("inert scheduler reports a next run")
	}
	if calls.Load() != 0 {
		t.Errorf("inert scheduler fired %d times", calls.Load())
	}
}

// TestScheduler_InvalidSchedule tests cron expression validation at start.
func TestScheduler_InvalidSchedule(t *testing.T) {
	tests := []string{
		"not a cron",
		"* * *",
		"61 * * * *",
	}

	for _, schedule := range tests {
		s := New(schedule, func(ctx context.Context) error { return nil }, nil)
		if err := s.Start(context.Background()); err == nil {
			t.Errorf("Start() accepted schedule %q", schedule)
			s.Stop()
		}
	}
}

// TestScheduler_StartStop tests the running state transitions and NextRun.
func TestScheduler_StartStop(t *testing.T) {
	s := New("0 3 * * *", func(ctx context.Context) error { return nil }, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !s.IsRunning() {
		t.Error("scheduler not running after Start()")
	}

	next := s.NextRun()
	if next == nil {
		t.Fatal("NextRun() = nil for active scheduler")
	}
	if !next.After(time.Now()) {
		t.Errorf("NextRun() = %v, want a future time", next)
	}

	s.Stop()
	if s.IsRunning() {
		t.Error("scheduler still running after Stop()")
	}
}

// TestScheduler_OverlapGuard tests that a tick is skipped while the previous
// pass is in flight.
func TestScheduler_OverlapGuard(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32

	s := New("* * * * *", func(ctx context.Context) error {
		calls.Add(1)
		<-release
		return nil
	}, nil)

	ctx := context.Background()

	// Drive ticks directly; waiting for real cron ticks would make the test
	// take minutes.
	go s.tick(ctx)

	deadline := time.After(2 * time.Second)
	for calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("first tick never started")
		case <-time.After(5 * time.Millisecond):
		}
	}

	// Second tick while the first is blocked must be a no-op.
	s.tick(ctx)
	if calls.Load() != 1 {
		t.Errorf("overlapping tick ran: %d calls", calls.Load())
	}

	close(release)

	// After the first pass finishes the guard clears.
	waitDeadline := time.After(2 * time.Second)
	for s.inFlight.Load() {
		select {
		case <-waitDeadline:
			t.Fatal("in-flight guard never cleared")
		case <-time.After(5 * time.Millisecond):
		}
	}

	s.tick(ctx)
	if calls.Load() != 2 {
		t.Errorf("post-release tick skipped: %d calls", calls.Load())
	}
}

// TestScheduler_RunErrorDoesNotStop tests that a failing pass leaves the
// scheduler active for the next tick.
func TestScheduler_RunErrorDoesNotStop(t *testing.T) {
	s := New("* * * * *", func(ctx context.Context) error {
		return context.DeadlineExceeded
	}, nil)

	ctx := context.Background()
	s.tick(ctx)

	if s.inFlight.Load() {
		t.Error("in-flight guard stuck after failed run")
	}

	// A later tick still runs.
	var ran atomic.Bool
	s.run = func(ctx context.Context) error {
		ran.Store(true)
		return nil
	}
	s.tick(ctx)
	if !ran.Load() {
		t.Error("tick after failure did not run")
	}
}

// TestScheduler_ContextCancelStops tests that cancelling the start context
// stops the scheduler.
func TestScheduler_ContextCancelStops(t *testing.T) {
	s := New("0 3 * * *", func(ctx context.Context) error { return nil }, nil)

	ctx, cancel := context.WithCancel(context.Background())
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	cancel()

	deadline := time.After(2 * time.Second)
	for s.IsRunning() {
		select {
		case <-deadline:
			t.Fatal("scheduler still running after context cancel")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
