package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"veridian-hq/saturn/pkg/audit"
	"veridian-hq/saturn/pkg/cli"
	"veridian-hq/saturn/pkg/config"
	"veridian-hq/saturn/pkg/policy"
	"veridian-hq/saturn/pkg/policy/store"
	"veridian-hq/saturn/pkg/retention"
	"veridian-hq/saturn/pkg/retention/engine"
	"veridian-hq/saturn/pkg/scheduler"
	"veridian-hq/saturn/pkg/telemetry/health"
	"veridian-hq/saturn/pkg/telemetry/metrics"
)

var serveFlags struct {
	schedule string
	execute  bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the retention daemon",
	Long: `Run Saturn as a daemon: retention passes fire on the configured cron
schedule, and a telemetry HTTP server exposes Prometheus metrics and
health probes.

Each scheduled pass reloads the policies file, so edits take effect on
the next run without a restart. With policies.watch enabled, edits are
additionally validated as soon as they land, so a broken file is flagged
before the next scheduled pass trips over it.

Examples:
  # Daemon with the configured schedule, dry-run mode
  saturn serve

  # Daemon that actually deletes
  saturn serve --execute

  # Override the cron schedule
  saturn serve --schedule "0 */6 * * *"`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveFlags.schedule, "schedule", "", "override cron schedule")
	serveCmd.Flags().BoolVar(&serveFlags.execute, "execute", false, "perform deletions instead of previewing them")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := initConfig()
	if err != nil {
		return err
	}

	if serveFlags.schedule != "" {
		cfg.Retention.Schedule = serveFlags.schedule
	}

	dryRun := cfg.Retention.DryRunEnabled() && !serveFlags.execute
	if serveFlags.execute {
		dryRun = false
	}

	ctx := cli.SetupSignalHandler()
	logger := slog.Default()

	logger.Info("starting saturn daemon",
		"schedule", cfg.Retention.Schedule,
		"dry_run", dryRun,
		"policies_path", cfg.Policies.Path,
	)

	eng, err := engine.NewSQLiteEngine(&engine.SQLiteConfig{
		Path:         cfg.Database.Path,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		WALMode:      cfg.Database.WALModeEnabled(),
		BusyTimeout:  cfg.Database.BusyTimeout,
	})
	if err != nil {
		return cli.NewCommandError("serve", err)
	}
	defer eng.Close()

	var auditStore *audit.Store
	if cfg.Audit.AuditEnabled() {
		auditStore, err = audit.NewStore(audit.Config{
			Path:        cfg.Audit.Path,
			BusyTimeout: cfg.Audit.BusyTimeout,
		})
		if err != nil {
			return cli.NewCommandError("serve", err)
		}
		defer auditStore.Close()
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	policyStore := store.New(cfg.Policies.Path, logger)
	orch := retention.NewOrchestrator(eng, &retention.Config{Logger: logger})

	// One scheduled pass: load policies fresh, evaluate, record.
	runPass := func(ctx context.Context) error {
		policies, err := policyStore.Load()
		if err != nil {
			return err
		}

		report, err := orch.Run(ctx, policies, dryRun)
		if report != nil {
			collector.Retention().ObserveReport(report)
			if auditStore != nil {
				if auditErr := auditStore.RecordRun(ctx, report); auditErr != nil {
					logger.Error("failed to record run in audit store", "error", auditErr)
				}
			}
		}
		return err
	}

	sched := scheduler.New(cfg.Retention.Schedule, runPass, logger)
	if err := sched.Start(ctx); err != nil {
		return cli.NewCommandError("serve", err)
	}
	defer sched.Stop()

	if next := sched.NextRun(); next != nil {
		logger.Info("next scheduled run", "at", next)
	}

	// Optional early validation of policy edits between runs.
	if cfg.Policies.Watch {
		watcher, err := store.NewWatcher(cfg.Policies.Path, cfg.Policies.DebounceInterval, logger)
		if err != nil {
			return cli.NewCommandError("serve", err)
		}
		go func() {
			if err := watcher.Watch(ctx, func() error {
				return checkPolicies(policyStore, logger)
			}); err != nil {
				logger.Error("policy watcher exited", "error", err)
			}
		}()
		defer watcher.Stop()
	}

	srv := telemetryServer(cfg, collector, eng, auditStore, policyStore)
	if srv != nil {
		go func() {
			logger.Info("telemetry server listening", "address", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("telemetry server failed", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry server shutdown failed", "error", err)
		}
	}

	return nil
}

// checkPolicies loads and resolves the policies file, reporting problems
// without running anything. It backs the hot-reload watcher: the next
// scheduled pass always re-reads the file itself.
func checkPolicies(policyStore *store.Store, logger *slog.Logger) error {
	policies, err := policyStore.Load()
	if err != nil {
		return err
	}

	for _, raw := range policies {
		if !raw.IsEnabled() {
			continue
		}
		if _, rejection := policy.Resolve(raw); rejection != nil {
			logger.Warn("policy will be rejected on next run",
				"policy_name", raw.PolicyName,
				"reason", rejection.String(),
			)
		}
	}
	return nil
}

// telemetryServer assembles the metrics and health HTTP server, or returns
// nil when both surfaces are disabled.
func telemetryServer(cfg *config.Config, collector *metrics.Collector, eng *engine.SQLiteEngine, auditStore *audit.Store, policyStore *store.Store) *http.Server {
	metricsEnabled := cfg.Telemetry.Metrics.MetricsEnabled()
	healthEnabled := cfg.Telemetry.Health.HealthEnabled()
	if !metricsEnabled && !healthEnabled {
		return nil
	}

	mux := http.NewServeMux()

	if metricsEnabled {
		mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
	}

	if healthEnabled {
		checker := health.New(cfg.Telemetry.Health.CheckTimeout)
		checker.RegisterCheck("database", eng.Ping)
		if auditStore != nil {
			checker.RegisterCheck("audit", auditStore.Ping)
		}
		checker.RegisterCheck("policies", func(ctx context.Context) error {
			// Absent is fine (no-op run); unreadable or unparsable is not.
			if _, err := os.Stat(policyStore.Path()); os.IsNotExist(err) {
				return nil
			}
			_, err := policyStore.Load()
			return err
		})
		health.Register(mux, checker, Version, GitCommit, BuildDate)
	}

	return &http.Server{
		Addr:         cfg.Telemetry.Metrics.ListenAddress,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
