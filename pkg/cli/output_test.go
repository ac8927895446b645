package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// TestWriteJSON tests indented JSON output.
func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]any{"policy_name": "user-events", "retention_days": 30}

	if err := WriteJSON(&buf, data); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded["policy_name"] != "user-events" {
		t.Errorf("policy_name = %v", decoded["policy_name"])
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("output is not indented")
	}
}

// TestTable tests header and row alignment output.
func TestTable(t *testing.T) {
	var buf bytes.Buffer

	table := NewTable(&buf, "POLICY", "DAYS")
	table.Row("user-events", "30")
	table.Row("audit-trail", "365")
	if err := table.Flush(); err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "POLICY") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "user-events") || !strings.Contains(lines[1], "30") {
		t.Errorf("row = %q", lines[1])
	}

	// Columns line up across rows.
	if strings.Index(lines[1], "30") != strings.Index(lines[2], "365") {
		t.Errorf("columns misaligned: %q vs %q", lines[1], lines[2])
	}
}

// TestCommandError tests message formatting and unwrapping.
func TestCommandError(t *testing.T) {
	cause := errors.New("no such table")
	err := NewCommandError("run", cause)

	if got := err.Error(); got != "command run failed: no such table" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("CommandError does not unwrap to its cause")
	}
}

// TestPolicyCheckError tests formatting and the distinct exit code, including
// when the check failure is wrapped by a CommandError.
func TestPolicyCheckError(t *testing.T) {
	err := NewPolicyCheckError(2, 5)

	if got := err.Error(); got != "2 of 5 policies invalid" {
		t.Errorf("Error() = %q", got)
	}
	if got := ExitCode(err); got != ExitCheckFailed {
		t.Errorf("ExitCode() = %d, want %d", got, ExitCheckFailed)
	}
	if got := ExitCode(NewCommandError("validate", err)); got != ExitCheckFailed {
		t.Errorf("ExitCode(wrapped) = %d, want %d", got, ExitCheckFailed)
	}
	if got := ExitCode(errors.New("disk on fire")); got != ExitFailure {
		t.Errorf("ExitCode(runtime error) = %d, want %d", got, ExitFailure)
	}
}

// TestConfigError tests formatting with and without a field.
func TestConfigError(t *testing.T) {
	withField := NewConfigError("database.path", "must not be empty")
	if got := withField.Error(); got != "config error in database.path: must not be empty" {
		t.Errorf("Error() = %q", got)
	}

	bare := NewConfigError("", "file unreadable")
	if got := bare.Error(); got != "config error: file unreadable" {
		t.Errorf("Error() = %q", got)
	}
}
