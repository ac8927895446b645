// Package store loads retention policies from a YAML file.
//
// The policies file holds a sequence of records under the top-level
// retention_policies key:
//
//	retention_policies:
//	  - policy_name: user_logs
//	    table_name: logs
//	    date_column: created_at
//	    retention_days: 30
//	    enabled: true
//
// # Failure Policy
//
// A missing file is not fatal: Load logs a warning and returns zero policies
// so a run degrades to a no-op pass instead of aborting. A file that exists
// but does not parse is a *ParseError and treated as a startup failure; the
// two conditions are deliberately distinct.
//
// # Hot Reload
//
// Watcher observes the policies file with fsnotify and invokes a reload
// callback after changes, debounced. A failed reload keeps the previous
// policy set.
package store
