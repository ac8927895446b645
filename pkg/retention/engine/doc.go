// Package engine performs the datastore side of retention: counting and
// deleting records older than a policy's cutoff.
//
// The orchestrator delegates one Request per eligible policy. In dry-run mode
// the engine only counts candidates (ModePreview); otherwise it deletes them
// and reports the affected row count (ModeExecuted).
//
// Two implementations are provided:
//
//   - SQLiteEngine: production engine against a SQLite database
//   - MemoryEngine: in-memory tables for tests, with a scriptable failure hook
//
// Misconfigured policies surface as ErrNoSuchTable or ErrNoSuchColumn so
// callers can tell them apart from connectivity failures.
package engine
