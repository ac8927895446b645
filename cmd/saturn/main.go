// Saturn is a data-retention and deletion job for regulatory compliance.
//
// It evaluates declaratively configured retention policies against a target
// database and deletes (or, in dry-run mode, previews the deletion of)
// records older than each policy's retention window, producing an auditable
// outcome for every policy.
//
// Usage:
//
//	# Preview what every policy would delete (dry run is the default)
//	saturn run
//
//	# Actually delete eligible records
//	saturn run --execute
//
//	# Run as a daemon on a cron schedule with metrics and health probes
//	saturn serve
//
//	# Check the policies file without touching the database
//	saturn validate
//
//	# List resolved policies
//	saturn policies
//
//	# Show recent run history from the audit store
//	saturn history
package main

func main() {
	Execute()
}
