package engine

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryEngine implements the Engine interface against in-memory tables.
// This implementation is intended for testing only and should not be used in
// production.
type MemoryEngine struct {
	mu     sync.Mutex
	tables map[string]memoryTable

	// FailFunc, when non-nil, is consulted before every Apply call and its
	// error (if any) returned instead. Tests use it to simulate delegate
	// failures for specific tables.
	FailFunc func(req Request) error

	applied []Request
}

type memoryTable struct {
	dateColumn string
	rows       []time.Time
}

// NewMemoryEngine creates an empty in-memory retention engine.
func NewMemoryEngine() *MemoryEngine {
	return &MemoryEngine{
		tables: make(map[string]memoryTable),
	}
}

// AddTable registers a table with the given date column and row timestamps.
func (e *MemoryEngine) AddTable(name, dateColumn string, rows ...time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tables[name] = memoryTable{
		dateColumn: dateColumn,
		rows:       append([]time.Time(nil), rows...),
	}
}

// RowCount returns the number of rows remaining in a table.
func (e *MemoryEngine) RowCount(name string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.tables[name].rows)
}

// Applied returns the requests seen so far, in call order.
func (e *MemoryEngine) Applied() []Request {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]Request(nil), e.applied...)
}

// Apply previews or executes a retention operation against the in-memory
// tables, mirroring the error taxonomy of the SQLite engine.
func (e *MemoryEngine) Apply(ctx context.Context, req Request) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.applied = append(e.applied, req)

	if e.FailFunc != nil {
		if err := e.FailFunc(req); err != nil {
			return Result{}, err
		}
	}

	table, ok := e.tables[req.Table]
	if !ok {
		return Result{}, NewEngineError(req.Table, "resolve",
			fmt.Errorf("%w: %q", ErrNoSuchTable, req.Table))
	}
	if table.dateColumn != req.DateColumn {
		return Result{}, NewEngineError(req.Table, "resolve",
			fmt.Errorf("%w: %q on table %q", ErrNoSuchColumn, req.DateColumn, req.Table))
	}

	cutoff := req.Cutoff.UTC()

	var kept []time.Time
	var eligible int64
	for _, row := range table.rows {
		if row.Before(cutoff) {
			eligible++
		} else {
			kept = append(kept, row)
		}
	}

	if req.DryRun {
		return Result{Mode: ModePreview, Count: eligible}, nil
	}

	table.rows = kept
	e.tables[req.Table] = table

	return Result{Mode: ModeExecuted, Count: eligible}, nil
}

// Ping always succeeds for the in-memory engine.
func (e *MemoryEngine) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory engine.
func (e *MemoryEngine) Close() error {
	return nil
}
