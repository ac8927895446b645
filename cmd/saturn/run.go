package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"veridian-hq/saturn/pkg/audit"
	"veridian-hq/saturn/pkg/cli"
	"veridian-hq/saturn/pkg/policy/store"
	"veridian-hq/saturn/pkg/retention"
	"veridian-hq/saturn/pkg/retention/engine"
)

var runFlags struct {
	execute  bool
	policies string
	noAudit  bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one retention pass",
	Long: `Evaluate every configured retention policy once and report the outcome.

By default the run is a dry run: the engine counts the records each policy
would delete without mutating data. Pass --execute to perform the deletion.

Examples:
  # Preview every policy's eligible records
  saturn run

  # Actually delete eligible records
  saturn run --execute

  # Use a different policies file for this run
  saturn run --policies /etc/saturn/policies.yaml`,
	RunE: runOnce,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runFlags.execute, "execute", false, "perform deletions instead of previewing them")
	runCmd.Flags().StringVar(&runFlags.policies, "policies", "", "override policies file path")
	runCmd.Flags().BoolVar(&runFlags.noAudit, "no-audit", false, "skip recording this run in the audit store")
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg, err := initConfig()
	if err != nil {
		return err
	}

	if runFlags.policies != "" {
		cfg.Policies.Path = runFlags.policies
	}

	// The safety gate: live deletion requires --execute, or an explicit
	// dry_run: false in configuration.
	dryRun := cfg.Retention.DryRunEnabled() && !runFlags.execute
	if runFlags.execute {
		dryRun = false
	}

	ctx := cli.SetupSignalHandler()

	policies, err := store.New(cfg.Policies.Path, slog.Default()).Load()
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	eng, err := engine.NewSQLiteEngine(&engine.SQLiteConfig{
		Path:         cfg.Database.Path,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		WALMode:      cfg.Database.WALModeEnabled(),
		BusyTimeout:  cfg.Database.BusyTimeout,
	})
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer eng.Close()

	orch := retention.NewOrchestrator(eng, &retention.Config{Logger: slog.Default()})

	report, err := orch.Run(ctx, policies, dryRun)
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	if cfg.Audit.AuditEnabled() && !runFlags.noAudit {
		recordAudit(ctx, cfg.Audit.Path, cfg.Audit.BusyTimeout, report)
	}

	printReport(report)

	if failed := report.Summary()[retention.OutcomeFailed]; failed > 0 {
		return cli.NewCommandError("run",
			fmt.Errorf("%d of %d policies failed", failed, len(report.Outcomes)))
	}
	return nil
}

// recordAudit persists the report. Audit failures are logged, not fatal: the
// run itself already completed.
func recordAudit(ctx context.Context, path string, busyTimeout time.Duration, report *retention.Report) {
	auditStore, err := audit.NewStore(audit.Config{Path: path, BusyTimeout: busyTimeout})
	if err != nil {
		slog.Error("failed to open audit store, run not recorded", "error", err)
		return
	}
	defer auditStore.Close()

	if err := auditStore.RecordRun(ctx, report); err != nil {
		slog.Error("failed to record run in audit store", "error", err)
	}
}

// printReport renders the per-policy outcome table.
func printReport(report *retention.Report) {
	mode := "live"
	if report.DryRun {
		mode = "dry-run"
	}
	fmt.Printf("Run %s (%s)\n\n", report.RunID, mode)

	table := cli.NewTable(os.Stdout, "POLICY", "OUTCOME", "DETAIL")
	for _, o := range report.Outcomes {
		table.Row(o.PolicyName, string(o.Kind), outcomeDetail(o))
	}
	table.Flush()

	summary := report.Summary()
	fmt.Printf("\n%d policies: %d ready, %d skipped, %d invalid, %d failed\n",
		len(report.Outcomes),
		summary[retention.OutcomeReady],
		summary[retention.OutcomeSkippedDisabled],
		summary[retention.OutcomeInvalidMissingField]+summary[retention.OutcomeInvalidNegativeDays],
		summary[retention.OutcomeFailed],
	)
}

func outcomeDetail(o retention.Outcome) string {
	switch o.Kind {
	case retention.OutcomeReady:
		return fmt.Sprintf("%s %d rows, cutoff %s",
			o.Result.Mode, o.Result.Count, o.Cutoff.Format(time.RFC3339))
	case retention.OutcomeInvalidMissingField:
		return fmt.Sprintf("missing field %s", o.MissingField)
	case retention.OutcomeInvalidNegativeDays:
		return "retention_days is negative"
	case retention.OutcomeFailed:
		return o.Error
	default:
		return ""
	}
}
