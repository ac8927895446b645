/*
Package cli provides command-line interface utilities for Saturn.

The package includes output helpers, error types, and signal handling used by
the saturn command.

Output:

Commands render results as text tables or JSON:

	table := cli.NewTable(os.Stdout, "POLICY", "OUTCOME", "CUTOFF")
	table.Row("user_logs", "ready", cutoff.Format(time.RFC3339))
	table.Flush()

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
