package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSuchTable indicates the request targeted a table that does not
	// exist in the datastore.
	ErrNoSuchTable = errors.New("no such table")

	// ErrNoSuchColumn indicates the request targeted a date column that does
	// not exist on the target table.
	ErrNoSuchColumn = errors.New("no such column")

	// ErrInvalidIdentifier indicates a table or column name that is not a
	// valid SQL identifier. Identifiers come from configuration, never from
	// request data, but they are still never interpolated unchecked.
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

// EngineError represents a failure while applying a retention operation.
type EngineError struct {
	Table     string // Target table
	Operation string // Operation that failed ("preview", "execute", "resolve")
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return fmt.Sprintf("engine error [table=%s, operation=%s]: %v", e.Table, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// NewEngineError creates a new EngineError.
func NewEngineError(table, operation string, cause error) *EngineError {
	return &EngineError{
		Table:     table,
		Operation: operation,
		Cause:     cause,
	}
}
