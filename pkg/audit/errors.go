package audit

import "fmt"

// AuditError represents a failure in the audit store.
type AuditError struct {
	Operation string // Operation that failed ("insert_run", "list_runs", etc.)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *AuditError) Error() string {
	return fmt.Sprintf("audit error [operation=%s]: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *AuditError) Unwrap() error {
	return e.Cause
}

// NewAuditError creates a new AuditError.
func NewAuditError(operation string, cause error) *AuditError {
	return &AuditError{
		Operation: operation,
		Cause:     cause,
	}
}
