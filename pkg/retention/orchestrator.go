package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"veridian-hq/saturn/pkg/policy"
	"veridian-hq/saturn/pkg/retention/engine"
)

// Config contains configuration for the Orchestrator.
type Config struct {
	// Logger receives one structured line per policy outcome plus run
	// start/end summaries. Defaults to slog.Default().
	Logger *slog.Logger

	// Clock supplies the current time for cutoff computation. Defaults to
	// time.Now. Tests inject a fixed clock.
	Clock func() time.Time

	// Hooks receives instrumentation callbacks during evaluation.
	Hooks Hooks
}

// Hooks are instrumentation callbacks invoked during policy evaluation.
// All fields are optional; tests use them to assert that disabled policies
// are never validated and never produce a cutoff.
type Hooks struct {
	// OnValidate fires when structural validation starts for a policy.
	OnValidate func(policyName string)

	// OnCutoff fires after a cutoff is computed for a policy.
	OnCutoff func(policyName string, cutoff time.Time)
}

// Orchestrator drives one evaluation pass over a list of retention policies.
// It holds no state between runs: two passes over identical input with an
// identical clock produce identical reports.
type Orchestrator struct {
	engine engine.Engine
	logger *slog.Logger
	clock  func() time.Time
	hooks  Hooks
}

// NewOrchestrator creates an orchestrator delegating to the given engine.
func NewOrchestrator(eng engine.Engine, cfg *Config) *Orchestrator {
	if cfg == nil {
		cfg = &Config{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Orchestrator{
		engine: eng,
		logger: logger.With("component", "retention.orchestrator"),
		clock:  clock,
		hooks:  cfg.Hooks,
	}
}

// Run evaluates every policy once, in input order, and returns the ordered
// report. A failure in one policy never aborts the batch; each policy's
// outcome is recorded and the pass continues. Run itself only returns an
// error when the context is cancelled mid-pass.
func (o *Orchestrator) Run(ctx context.Context, policies []policy.RawPolicy, dryRun bool) (*Report, error) {
	report := &Report{
		RunID:     uuid.New().String(),
		DryRun:    dryRun,
		StartedAt: o.clock().UTC(),
		Outcomes:  make([]Outcome, 0, len(policies)),
	}

	logger := o.logger.With("run_id", report.RunID)

	logger.Info("starting retention run",
		"dry_run", dryRun,
		"policy_count", len(policies),
	)

	for _, raw := range policies {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = o.clock().UTC()
			return report, fmt.Errorf("retention run interrupted: %w", err)
		}

		outcome := o.evaluate(ctx, raw, dryRun)
		report.Outcomes = append(report.Outcomes, outcome)
		o.logOutcome(logger, outcome)
	}

	report.FinishedAt = o.clock().UTC()

	summary := report.Summary()
	logger.Info("retention run completed",
		"dry_run", dryRun,
		"policy_count", len(policies),
		"ready", summary[OutcomeReady],
		"skipped", summary[OutcomeSkippedDisabled],
		"invalid", summary[OutcomeInvalidMissingField]+summary[OutcomeInvalidNegativeDays],
		"failed", summary[OutcomeFailed],
		"affected_rows", report.Deleted(),
	)

	return report, nil
}

// evaluate runs the per-policy decision procedure: enabled check, structural
// validation, range validation, cutoff computation, engine delegation. Any
// panic inside one policy's evaluation is contained here and recorded as that
// policy's failure.
func (o *Orchestrator) evaluate(ctx context.Context, raw policy.RawPolicy, dryRun bool) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = Outcome{
				PolicyName: raw.PolicyName,
				Kind:       OutcomeFailed,
				Err:        fmt.Errorf("panic during policy evaluation: %v", r),
			}
			outcome.Error = outcome.Err.Error()
		}
	}()

	// Disabled policies are a pure no-op: no validation, no cutoff.
	if !raw.IsEnabled() {
		return Outcome{
			PolicyName: raw.PolicyName,
			Kind:       OutcomeSkippedDisabled,
		}
	}

	if o.hooks.OnValidate != nil {
		o.hooks.OnValidate(raw.PolicyName)
	}

	valid, rejection := policy.Resolve(raw)
	if rejection != nil {
		return rejectionOutcome(rejection)
	}

	cutoff := valid.Cutoff(o.clock())
	if o.hooks.OnCutoff != nil {
		o.hooks.OnCutoff(valid.PolicyName, cutoff)
	}

	result, err := o.engine.Apply(ctx, engine.Request{
		Table:      valid.TableName,
		DateColumn: valid.DateColumn,
		Cutoff:     cutoff,
		DryRun:     dryRun,
	})
	if err != nil {
		return Outcome{
			PolicyName:    valid.PolicyName,
			Kind:          OutcomeFailed,
			RetentionDays: valid.RetentionDays,
			Cutoff:        cutoff,
			Err:           err,
			Error:         err.Error(),
		}
	}

	return Outcome{
		PolicyName:    valid.PolicyName,
		Kind:          OutcomeReady,
		RetentionDays: valid.RetentionDays,
		Cutoff:        cutoff,
		Result:        &result,
	}
}

// rejectionOutcome maps a validation rejection to its outcome kind.
func rejectionOutcome(rejection *policy.Rejection) Outcome {
	switch rejection.Reason {
	case policy.RejectMissingField:
		return Outcome{
			PolicyName:   rejection.PolicyName,
			Kind:         OutcomeInvalidMissingField,
			MissingField: rejection.Field,
		}
	default:
		return Outcome{
			PolicyName: rejection.PolicyName,
			Kind:       OutcomeInvalidNegativeDays,
		}
	}
}

// logOutcome emits the single structured line for one policy outcome.
func (o *Orchestrator) logOutcome(logger *slog.Logger, outcome Outcome) {
	switch outcome.Kind {
	case OutcomeSkippedDisabled:
		logger.Info("policy skipped",
			"policy_name", outcome.PolicyName,
			"outcome", outcome.Kind,
		)
	case OutcomeInvalidMissingField:
		logger.Error("policy invalid",
			"policy_name", outcome.PolicyName,
			"outcome", outcome.Kind,
			"missing_field", outcome.MissingField,
		)
	case OutcomeInvalidNegativeDays:
		logger.Error("policy invalid",
			"policy_name", outcome.PolicyName,
			"outcome", outcome.Kind,
		)
	case OutcomeReady:
		logger.Info("policy ready",
			"policy_name", outcome.PolicyName,
			"outcome", outcome.Kind,
			"retention_days", outcome.RetentionDays,
			"cutoff", outcome.Cutoff,
			"mode", outcome.Result.Mode,
			"count", outcome.Result.Count,
		)
	case OutcomeFailed:
		logger.Error("policy failed",
			"policy_name", outcome.PolicyName,
			"outcome", outcome.Kind,
			"error", outcome.Err,
		)
	}
}
