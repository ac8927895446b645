package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"veridian-hq/saturn/pkg/audit"
	"veridian-hq/saturn/pkg/cli"
)

var historyFlags struct {
	limit  int
	runID  string
	output string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show retention run history",
	Long: `Show recent retention runs from the audit store, or the per-policy
outcomes of one run.

Examples:
  # Recent runs
  saturn history

  # Outcomes of a specific run
  saturn history --run 2f2f4f9e-...

  # Machine-readable output
  saturn history --output json`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "number of runs to show")
	historyCmd.Flags().StringVar(&historyFlags.runID, "run", "", "show outcomes for one run ID")
	historyCmd.Flags().StringVarP(&historyFlags.output, "output", "o", "text", "output format (text, json)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := initConfig()
	if err != nil {
		return err
	}

	auditStore, err := audit.NewStore(audit.Config{
		Path:        cfg.Audit.Path,
		BusyTimeout: cfg.Audit.BusyTimeout,
	})
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	defer auditStore.Close()

	ctx := context.Background()

	if historyFlags.runID != "" {
		return showRunOutcomes(ctx, auditStore, historyFlags.runID)
	}

	runs, err := auditStore.ListRuns(ctx, historyFlags.limit)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	if cli.OutputFormat(historyFlags.output) == cli.FormatJSON {
		return cli.WriteJSON(os.Stdout, runs)
	}

	table := cli.NewTable(os.Stdout, "RUN", "MODE", "STARTED", "DURATION", "POLICIES")
	for _, r := range runs {
		mode := "live"
		if r.DryRun {
			mode = "dry-run"
		}
		table.Row(
			r.RunID,
			mode,
			r.StartedAt.Format(time.RFC3339),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond).String(),
			fmt.Sprintf("%d", r.Policies),
		)
	}
	return table.Flush()
}

func showRunOutcomes(ctx context.Context, auditStore *audit.Store, runID string) error {
	outcomes, err := auditStore.RunOutcomes(ctx, runID)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	if cli.OutputFormat(historyFlags.output) == cli.FormatJSON {
		return cli.WriteJSON(os.Stdout, outcomes)
	}

	table := cli.NewTable(os.Stdout, "SEQ", "POLICY", "OUTCOME", "MODE", "COUNT", "DETAIL")
	for _, o := range outcomes {
		detail := o.Error
		if o.MissingField != "" {
			detail = fmt.Sprintf("missing field %s", o.MissingField)
		}
		table.Row(
			fmt.Sprintf("%d", o.Seq),
			o.PolicyName,
			o.Kind,
			o.Mode,
			fmt.Sprintf("%d", o.Count),
			detail,
		)
	}
	return table.Flush()
}
