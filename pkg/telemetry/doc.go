// Package telemetry groups Saturn's observability concerns.
//
// # Components
//
//   - logging: structured slog loggers with personal-data redaction
//   - metrics: Prometheus metrics for retention runs
//   - health: liveness and readiness probes for the daemon
//
// Each subpackage stands alone; there is no shared telemetry object. The
// serve command wires them together: it builds the process logger at startup,
// registers run metrics with a Collector, and mounts the metrics and health
// handlers on one HTTP server.
//
// # Personal data
//
// Saturn exists to delete personal data on schedule, so its own telemetry
// must not leak it. Log redaction is on by default (emails, SSNs, card
// numbers, IP addresses, phone numbers, plus sensitive key masking), and
// metrics carry only policy names and outcome kinds, never record contents.
package telemetry
