// Package policy defines the retention policy model.
//
// Policies arrive from configuration as loosely-typed RawPolicy records and
// are converted to ValidPolicy values through Resolve, which either accepts a
// policy wholesale or rejects it with a structured Rejection. Code that acts
// on policies (the orchestrator, the retention engine) only ever handles
// ValidPolicy values, so partially-shaped data never travels further than the
// validation boundary.
//
// # Validation Rules
//
//   - policy_name, table_name, date_column must be present and non-empty
//   - retention_days must be present and >= 0 (never clamped)
//   - enabled is optional and defaults to true
//
// # Basic Usage
//
//	valid, rejection := policy.Resolve(raw)
//	if rejection != nil {
//	    log.Printf("policy rejected: %s", rejection)
//	    return
//	}
//	cutoff := valid.Cutoff(time.Now())
package policy
