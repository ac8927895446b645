package policy

import "time"

// RawPolicy is a retention policy exactly as it appears in the policies file,
// before any validation has run. Optional and missing fields are represented
// with pointers so that "absent" and "zero" remain distinguishable; nothing
// outside this package and the store loader should handle RawPolicy values.
type RawPolicy struct {
	// PolicyName identifies the policy in logs and audit records.
	// Required, unique within a run.
	PolicyName string `yaml:"policy_name"`

	// TableName is the target table holding the records subject to retention.
	// Required.
	TableName string `yaml:"table_name"`

	// DateColumn is the column used to compute record age. Required.
	DateColumn string `yaml:"date_column"`

	// RetentionDays is the age threshold in days. Required, must be >= 0.
	// A nil pointer means the field was absent from the document.
	RetentionDays *int `yaml:"retention_days"`

	// Enabled controls whether the policy is evaluated at all.
	// Optional, defaults to true.
	Enabled *bool `yaml:"enabled"`
}

// IsEnabled reports whether the policy should be evaluated. Policies that do
// not set the enabled field are enabled.
func (p RawPolicy) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

// ValidPolicy is a policy that passed structural and range validation. All
// fields are present and checked; downstream code (orchestrator, engine)
// only ever sees ValidPolicy values.
type ValidPolicy struct {
	PolicyName    string
	TableName     string
	DateColumn    string
	RetentionDays int
}

// Cutoff returns the retention cutoff relative to now: records strictly older
// than the returned time are eligible for deletion under this policy. The
// cutoff is always computed in UTC.
func (p ValidPolicy) Cutoff(now time.Time) time.Time {
	return now.UTC().AddDate(0, 0, -p.RetentionDays)
}
