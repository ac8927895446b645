// Package health provides liveness and readiness probes for the daemon.
//
// Components register CheckFuncs (database ping, audit store ping, policy
// source) with the Checker; readiness aggregates them concurrently with a
// per-check timeout. Register mounts /healthz, /readyz, and /version on the
// telemetry HTTP mux.
package health
