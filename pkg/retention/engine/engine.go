package engine

import (
	"context"
	"time"
)

// Mode indicates how a request against the engine was executed.
type Mode string

const (
	// ModePreview means the engine only counted eligible records.
	ModePreview Mode = "preview"

	// ModeExecuted means the engine deleted eligible records.
	ModeExecuted Mode = "executed"
)

// Request describes a single retention operation delegated by the
// orchestrator: one call per eligible policy, sequential, no overlap.
type Request struct {
	// Table is the target table name.
	Table string

	// DateColumn is the column used to compute record age.
	DateColumn string

	// Cutoff is the retention cutoff; records strictly older than the
	// cutoff are eligible for deletion.
	Cutoff time.Time

	// DryRun selects preview mode: report intended deletions without
	// mutating data.
	DryRun bool
}

// Result is the outcome of a retention operation.
type Result struct {
	// Mode reports whether the request was previewed or executed.
	Mode Mode `json:"mode"`

	// Count is the candidate count in preview mode, the deleted row count
	// in executed mode.
	Count int64 `json:"count"`
}

// Engine performs the actual candidate counting and deletion against a
// datastore. Implementations must fail with ErrNoSuchTable or ErrNoSuchColumn
// (wrapped) when the request targets a table or column that does not exist,
// so callers can distinguish misconfigured policies from infrastructure
// failures.
type Engine interface {
	// Apply previews or executes one retention operation, per Request.DryRun.
	Apply(ctx context.Context, req Request) (Result, error)

	// Ping verifies connectivity to the underlying datastore.
	Ping(ctx context.Context) error

	// Close releases the engine's resources.
	Close() error
}
