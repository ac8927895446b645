package store

import "fmt"

// ParseError indicates the policies file exists but is not valid YAML or does
// not match the expected document shape. Unlike a missing file, which loads
// as zero policies, a parse error is surfaced to the caller and treated as a
// startup failure.
type ParseError struct {
	Path  string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse policies file %q: %v", e.Path, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ReadError indicates the policies file exists but could not be read
// (permissions, I/O failure).
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read policies file %q: %v", e.Path, e.Cause)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}
