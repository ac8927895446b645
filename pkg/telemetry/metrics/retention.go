package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"veridian-hq/saturn/pkg/config"
	"veridian-hq/saturn/pkg/retention"
)

// RetentionMetrics tracks metrics for retention runs.
//
// Metrics:
//   - saturn_retention_runs_total: Total runs by mode (dry_run / live)
//   - saturn_retention_run_duration_seconds: Run duration
//   - saturn_retention_outcomes_total: Per-policy outcomes by kind
//   - saturn_retention_rows_total: Candidate/deleted rows by policy and mode
//   - saturn_retention_last_run_timestamp_seconds: Completion time of the last run
type RetentionMetrics struct {
	// Total runs by mode
	runsTotal *prometheus.CounterVec

	// Run duration histogram
	runDuration prometheus.Histogram

	// Per-policy outcomes by kind
	outcomesTotal *prometheus.CounterVec

	// Rows previewed or deleted, by policy and engine mode
	rowsTotal *prometheus.CounterVec

	// Completion time of the most recent run
	lastRunTimestamp prometheus.Gauge
}

// NewRetentionMetrics creates and registers retention metrics with the
// provided registry.
func NewRetentionMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RetentionMetrics {
	rm := &RetentionMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_total",
				Help:      "Total number of retention runs",
			},
			[]string{"mode"},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "run_duration_seconds",
				Help:      "Duration of retention runs in seconds",
				// Runs are dominated by DELETE statements; seconds to minutes
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 14), // 10ms to ~82s
			},
		),

		outcomesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "outcomes_total",
				Help:      "Total number of per-policy outcomes by kind",
			},
			[]string{"kind"},
		),

		rowsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rows_total",
				Help:      "Rows previewed or deleted by policy and mode",
			},
			[]string{"policy", "mode"},
		),

		lastRunTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix timestamp of the last completed retention run",
			},
		),
	}

	registry.MustRegister(
		rm.runsTotal,
		rm.runDuration,
		rm.outcomesTotal,
		rm.rowsTotal,
		rm.lastRunTimestamp,
	)

	return rm
}

// ObserveReport records all metrics for one completed run report.
func (rm *RetentionMetrics) ObserveReport(report *retention.Report) {
	mode := "live"
	if report.DryRun {
		mode = "dry_run"
	}
	rm.runsTotal.WithLabelValues(mode).Inc()

	if !report.FinishedAt.IsZero() && !report.StartedAt.IsZero() {
		rm.runDuration.Observe(report.FinishedAt.Sub(report.StartedAt).Seconds())
	}
	rm.lastRunTimestamp.SetToCurrentTime()

	for _, outcome := range report.Outcomes {
		rm.outcomesTotal.WithLabelValues(string(outcome.Kind)).Inc()

		if outcome.Kind == retention.OutcomeReady && outcome.Result != nil {
			rm.rowsTotal.WithLabelValues(outcome.PolicyName, string(outcome.Result.Mode)).
				Add(float64(outcome.Result.Count))
		}
	}
}

// ObserveRunDuration records a run duration directly.
func (rm *RetentionMetrics) ObserveRunDuration(d time.Duration) {
	rm.runDuration.Observe(d.Seconds())
}
