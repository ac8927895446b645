// Package audit persists retention run history.
//
// Every orchestration pass produces a Report; the audit store writes it as
// one runs row plus one outcomes row per policy, preserving evaluation order
// through sequence numbers. History is append-only and queryable by run, so
// an operator can answer "what did the job decide, and why" for any past run,
// including dry runs.
package audit
