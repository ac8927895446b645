// Package config defines and loads Saturn's configuration.
//
// Configuration is a single YAML file with sections for the target database,
// the retention policies source, run scheduling, audit history, and
// telemetry. Loading applies defaults, then environment variable overrides
// (SATURN_SECTION_FIELD), then validates the final result, collecting every
// field error rather than stopping at the first.
//
// Note that this file configures the process; the retention policies
// themselves live in their own file (policies.path) and are loaded by the
// policy store, with a different failure contract: a missing policies file
// degrades to a no-op run, while a missing or invalid config file is a
// startup error.
package config
