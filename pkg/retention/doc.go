// Package retention orchestrates evaluation of data-retention policies.
//
// One Run is one pass: every loaded policy is evaluated independently, in
// input order, and the pass produces an ordered Report with exactly one
// Outcome per policy. The per-policy decision procedure is:
//
//  1. Enabled check — disabled policies are skipped without validation
//  2. Structural validation — all four required fields present
//  3. Range validation — retention_days must be non-negative
//  4. Cutoff computation (now UTC minus retention_days days) and delegation
//     to the retention engine, gated by the dry-run flag
//
// A failure in one policy (engine error, panic) is recorded as that policy's
// OutcomeFailed and never aborts the batch. The orchestrator holds no state
// between runs and never retries; retry cadence belongs to the scheduler.
//
// # Basic Usage
//
//	orch := retention.NewOrchestrator(eng, &retention.Config{Logger: logger})
//	report, err := orch.Run(ctx, policies, true)
//	if err != nil {
//	    return err
//	}
//	for _, outcome := range report.Outcomes {
//	    fmt.Println(outcome.PolicyName, outcome.Kind)
//	}
package retention
