package retention

import (
	"time"

	"veridian-hq/saturn/pkg/retention/engine"
)

// OutcomeKind classifies the result of evaluating one policy.
type OutcomeKind string

const (
	// OutcomeSkippedDisabled means the policy was disabled; it was neither
	// validated nor evaluated.
	OutcomeSkippedDisabled OutcomeKind = "skipped-disabled"

	// OutcomeInvalidMissingField means a required field was absent; the
	// policy was rejected wholesale before any cutoff computation.
	OutcomeInvalidMissingField OutcomeKind = "invalid-missing-field"

	// OutcomeInvalidNegativeDays means retention_days was negative.
	OutcomeInvalidNegativeDays OutcomeKind = "invalid-negative-days"

	// OutcomeReady means the policy validated, a cutoff was computed, and
	// the delegated engine call succeeded.
	OutcomeReady OutcomeKind = "ready"

	// OutcomeFailed means the delegated engine call (or something else in
	// this policy's evaluation) failed at runtime. Validation rejections are
	// never counted as failed.
	OutcomeFailed OutcomeKind = "failed"
)

// Outcome records the evaluation of a single policy within a run.
type Outcome struct {
	// PolicyName identifies the policy, when one was present.
	PolicyName string `json:"policy_name"`

	// Kind classifies the outcome.
	Kind OutcomeKind `json:"kind"`

	// MissingField names the absent field for OutcomeInvalidMissingField.
	MissingField string `json:"missing_field,omitempty"`

	// RetentionDays is the validated retention window, set for OutcomeReady
	// and OutcomeFailed.
	RetentionDays int `json:"retention_days,omitempty"`

	// Cutoff is the computed retention cutoff (UTC), set for OutcomeReady
	// and OutcomeFailed.
	Cutoff time.Time `json:"cutoff,omitzero"`

	// Result is the engine result, set for OutcomeReady.
	Result *engine.Result `json:"result,omitempty"`

	// Err carries the failure for OutcomeFailed.
	Err error `json:"-"`

	// Error is the string form of Err, for serialized outcomes.
	Error string `json:"error,omitempty"`
}

// Report is the ordered result of one orchestration pass. Outcomes appear in
// policy input order, one per loaded policy.
type Report struct {
	// RunID uniquely identifies the pass, for audit correlation.
	RunID string `json:"run_id"`

	// DryRun records the mode the pass ran in.
	DryRun bool `json:"dry_run"`

	// StartedAt and FinishedAt bound the pass.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Outcomes holds one entry per input policy, in input order.
	Outcomes []Outcome `json:"outcomes"`
}

// Summary returns outcome counts by kind.
func (r *Report) Summary() map[OutcomeKind]int {
	counts := make(map[OutcomeKind]int, 5)
	for _, o := range r.Outcomes {
		counts[o.Kind]++
	}
	return counts
}

// Deleted returns the total rows deleted (or, in dry-run mode, the total
// candidate rows) across all ready outcomes.
func (r *Report) Deleted() int64 {
	var total int64
	for _, o := range r.Outcomes {
		if o.Kind == OutcomeReady && o.Result != nil {
			total += o.Result.Count
		}
	}
	return total
}
