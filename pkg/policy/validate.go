package policy

import "fmt"

// RejectReason classifies why a policy failed validation.
type RejectReason string

const (
	// RejectMissingField indicates a required field was absent or empty.
	RejectMissingField RejectReason = "missing-field"

	// RejectNegativeRetention indicates retention_days was negative.
	RejectNegativeRetention RejectReason = "negative-retention-days"
)

// Rejection describes why a raw policy was rejected wholesale. A rejected
// policy never reaches cutoff computation or the retention engine.
type Rejection struct {
	// PolicyName is the policy identifier, if one was present.
	PolicyName string

	// Reason is the rejection classification.
	Reason RejectReason

	// Field names the missing field for RejectMissingField.
	Field string
}

func (r *Rejection) String() string {
	switch r.Reason {
	case RejectMissingField:
		return fmt.Sprintf("missing required field %q", r.Field)
	case RejectNegativeRetention:
		return "retention_days must be non-negative"
	default:
		return string(r.Reason)
	}
}

// requiredFields is the validation order for structural checks. The first
// missing field is the one reported.
var requiredFields = []struct {
	name    string
	present func(RawPolicy) bool
}{
	{"policy_name", func(p RawPolicy) bool { return p.PolicyName != "" }},
	{"table_name", func(p RawPolicy) bool { return p.TableName != "" }},
	{"retention_days", func(p RawPolicy) bool { return p.RetentionDays != nil }},
	{"date_column", func(p RawPolicy) bool { return p.DateColumn != "" }},
}

// Resolve validates a raw policy and converts it into a ValidPolicy. It
// returns a non-nil Rejection instead when any required field is missing or
// retention_days is negative. Validation rejects wholesale; a policy is never
// partially accepted. Negative retention windows are a hard failure, never
// clamped to zero.
func Resolve(raw RawPolicy) (ValidPolicy, *Rejection) {
	for _, f := range requiredFields {
		if !f.present(raw) {
			return ValidPolicy{}, &Rejection{
				PolicyName: raw.PolicyName,
				Reason:     RejectMissingField,
				Field:      f.name,
			}
		}
	}

	if *raw.RetentionDays < 0 {
		return ValidPolicy{}, &Rejection{
			PolicyName: raw.PolicyName,
			Reason:     RejectNegativeRetention,
		}
	}

	return ValidPolicy{
		PolicyName:    raw.PolicyName,
		TableName:     raw.TableName,
		DateColumn:    raw.DateColumn,
		RetentionDays: *raw.RetentionDays,
	}, nil
}
