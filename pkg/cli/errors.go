package cli

import (
	"errors"
	"fmt"
)

// Exit codes. Check commands exit distinctly when they run fine but the
// checked input is bad, so scripts can tell "saturn could not run" apart
// from "saturn ran and found invalid policies".
const (
	ExitFailure     = 1
	ExitCheckFailed = 2
)

// ConfigError reports a problem getting Saturn into a runnable state before
// any command logic begins: an unreadable config file, an invalid section,
// or logger construction.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config error: %s", e.Message)
	}
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// NewConfigError creates a new ConfigError. Field may be empty when the
// failure is not tied to one configuration key.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// CommandError wraps a failure inside a subcommand, naming the command so
// the cause keeps its context when printed at the top level.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// PolicyCheckError reports that the policies file was readable but some of
// its policies failed validation.
type PolicyCheckError struct {
	Invalid int
	Total   int
}

func (e *PolicyCheckError) Error() string {
	return fmt.Sprintf("%d of %d policies invalid", e.Invalid, e.Total)
}

// NewPolicyCheckError creates a new PolicyCheckError.
func NewPolicyCheckError(invalid, total int) *PolicyCheckError {
	return &PolicyCheckError{Invalid: invalid, Total: total}
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	var check *PolicyCheckError
	if errors.As(err, &check) {
		return ExitCheckFailed
	}
	return ExitFailure
}
