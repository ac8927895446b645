package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"veridian-hq/saturn/pkg/retention"
	"veridian-hq/saturn/pkg/retention/engine"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(Config{
		Path: filepath.Join(t.TempDir(), "audit.db"),
	})
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// TestStore_RecordAndListRuns tests the run persistence round trip.
func TestStore_RecordAndListRuns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	started := time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC)

	report := &retention.Report{
		RunID:      "run-1",
		DryRun:     true,
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Outcomes: []retention.Outcome{
			{
				PolicyName:    "user-events",
				Kind:          retention.OutcomeReady,
				RetentionDays: 30,
				Cutoff:        started.AddDate(0, 0, -30),
				Result:        &engine.Result{Mode: engine.ModePreview, Count: 42},
			},
			{PolicyName: "audit-trail", Kind: retention.OutcomeSkippedDisabled},
		},
	}

	if err := store.RecordRun(ctx, report); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	runs, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("ListRuns() returned %d runs, want 1", len(runs))
	}

	run := runs[0]
	if run.RunID != "run-1" {
		t.Errorf("RunID = %q, want %q", run.RunID, "run-1")
	}
	if !run.DryRun {
		t.Error("DryRun = false, want true")
	}
	if run.Policies != 2 {
		t.Errorf("Policies = %d, want 2", run.Policies)
	}
	if !run.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", run.StartedAt, started)
	}
}

// TestStore_RunOutcomes tests that outcomes come back in evaluation order
// with their per-kind fields intact.
func TestStore_RunOutcomes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC)
	cutoff := now.AddDate(0, 0, -90)

	report := &retention.Report{
		RunID:      "run-2",
		StartedAt:  now,
		FinishedAt: now.Add(time.Second),
		Outcomes: []retention.Outcome{
			{
				PolicyName:    "orders",
				Kind:          retention.OutcomeReady,
				RetentionDays: 90,
				Cutoff:        cutoff,
				Result:        &engine.Result{Mode: engine.ModeExecuted, Count: 7},
			},
			{
				PolicyName:   "broken",
				Kind:         retention.OutcomeInvalidMissingField,
				MissingField: "date_column",
			},
			{
				PolicyName: "flaky",
				Kind:       retention.OutcomeFailed,
				Error:      "disk on fire",
			},
		},
	}

	if err := store.RecordRun(ctx, report); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	outcomes, err := store.RunOutcomes(ctx, "run-2")
	if err != nil {
		t.Fatalf("RunOutcomes() failed: %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("RunOutcomes() returned %d outcomes, want 3", len(outcomes))
	}

	for i, o := range outcomes {
		if o.Seq != i {
			t.Errorf("outcome %d Seq = %d", i, o.Seq)
		}
	}

	ready := outcomes[0]
	if ready.PolicyName != "orders" || ready.Kind != string(retention.OutcomeReady) {
		t.Errorf("first outcome = %+v", ready)
	}
	if ready.Mode != string(engine.ModeExecuted) || ready.Count != 7 {
		t.Errorf("first outcome mode/count = %q/%d, want executed/7", ready.Mode, ready.Count)
	}
	if !ready.Cutoff.Equal(cutoff) {
		t.Errorf("first outcome cutoff = %v, want %v", ready.Cutoff, cutoff)
	}

	invalid := outcomes[1]
	if invalid.MissingField != "date_column" {
		t.Errorf("second outcome MissingField = %q", invalid.MissingField)
	}
	if invalid.Mode != "" || invalid.Count != 0 {
		t.Errorf("invalid outcome carries engine result: %+v", invalid)
	}

	failed := outcomes[2]
	if failed.Error != "disk on fire" {
		t.Errorf("third outcome Error = %q", failed.Error)
	}
}

// TestStore_ListRunsNewestFirst tests run ordering and the limit.
func TestStore_ListRunsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		report := &retention.Report{
			RunID:      []string{"oldest", "middle", "newest"}[i],
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Second),
		}
		if err := store.RecordRun(ctx, report); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns(2) returned %d runs", len(runs))
	}
	if runs[0].RunID != "newest" || runs[1].RunID != "middle" {
		t.Errorf("run order = %q, %q", runs[0].RunID, runs[1].RunID)
	}
}

// TestStore_UnknownRun tests querying outcomes of a run that never happened.
func TestStore_UnknownRun(t *testing.T) {
	store := newTestStore(t)

	outcomes, err := store.RunOutcomes(context.Background(), "never-ran")
	if err != nil {
		t.Fatalf("RunOutcomes() failed: %v", err)
	}
	if len(outcomes) != 0 {
		t.Errorf("got %d outcomes for unknown run", len(outcomes))
	}
}

// TestStore_EmptyPathRejected tests the configuration guard.
func TestStore_EmptyPathRejected(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Error("NewStore() accepted empty path")
	}
}

// TestStore_Ping tests connectivity checks.
func TestStore_Ping(t *testing.T) {
	store := newTestStore(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping() failed: %v", err)
	}
}
