// Package metrics exposes Prometheus metrics for retention runs.
//
// The Collector owns the registry; RetentionMetrics records run counts,
// durations, per-policy outcome kinds, and previewed/deleted row counts from
// completed run reports. Mount Collector.Handler at the configured metrics
// path to expose the endpoint.
package metrics
