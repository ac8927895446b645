package config

import "time"

// Config is the root configuration structure for Saturn. It contains all
// configuration sections for the target database, the policy source, run
// scheduling, audit history, and telemetry.
type Config struct {
	// Database contains connection settings for the target datastore the
	// retention engine operates on.
	Database DatabaseConfig `yaml:"database"`

	// Policies contains configuration for the retention policy source:
	// file path, optional hot reload.
	Policies PoliciesConfig `yaml:"policies"`

	// Retention contains run configuration: schedule and execution mode.
	Retention RetentionConfig `yaml:"retention"`

	// Audit contains configuration for the run-history store.
	Audit AuditConfig `yaml:"audit"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and health probes.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// DatabaseConfig contains connection settings for the target SQLite database.
type DatabaseConfig struct {
	// Path is the database file path.
	// Default: "data/saturn.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode *bool `yaml:"wal_mode"`

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// WALModeEnabled reports the effective WAL setting, defaulting to true.
func (c DatabaseConfig) WALModeEnabled() bool {
	if c.WALMode == nil {
		return DefaultDatabaseWALMode
	}
	return *c.WALMode
}

// PoliciesConfig contains configuration for the policy source.
type PoliciesConfig struct {
	// Path is the retention policies file path. A missing file is not an
	// error; it loads as zero policies.
	// Default: "config/retention_policies.yaml"
	Path string `yaml:"path"`

	// Watch enables hot reloading of the policies file in daemon mode.
	// Default: false
	Watch bool `yaml:"watch"`

	// DebounceInterval is the time to wait after the last file event before
	// reloading.
	// Default: 250ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`
}

// RetentionConfig contains run configuration.
type RetentionConfig struct {
	// Schedule is a cron expression for daemon-mode runs. Empty means the
	// daemon never fires on its own.
	// Default: "0 3 * * *" (daily at 3 AM)
	Schedule string `yaml:"schedule"`

	// DryRun selects preview mode: report intended deletions without
	// mutating data. Live deletion requires explicitly setting this to
	// false (or passing --execute on the command line).
	// Default: true
	DryRun *bool `yaml:"dry_run"`
}

// DryRunEnabled reports the effective dry-run setting, defaulting to true.
func (c RetentionConfig) DryRunEnabled() bool {
	return c.DryRun == nil || *c.DryRun
}

// AuditConfig contains configuration for the run-history store.
type AuditConfig struct {
	// Enabled controls whether run reports are persisted.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// Path is the audit database file path.
	// Default: "data/audit.db"
	Path string `yaml:"path"`

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// AuditEnabled reports the effective audit setting, defaulting to true.
func (c AuditConfig) AuditEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Health contains health probe configuration.
	Health HealthConfig `yaml:"health"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in logs.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactPII enables redaction of personal data patterns in log output.
	// Default: true
	RedactPII *bool `yaml:"redact_pii"`

	// RedactPatterns contains custom redaction patterns applied in addition
	// to the built-in ones.
	RedactPatterns []RedactPattern `yaml:"redact_patterns"`
}

// RedactPIIEnabled reports the effective redaction setting, defaulting to true.
func (c LoggingConfig) RedactPIIEnabled() bool {
	return c.RedactPII == nil || *c.RedactPII
}

// RedactPattern defines a custom log redaction pattern.
type RedactPattern struct {
	// Name identifies the pattern.
	Name string `yaml:"name"`

	// Pattern is the regular expression to match.
	Pattern string `yaml:"pattern"`

	// Replacement is the substitution text.
	Replacement string `yaml:"replacement"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is served.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// ListenAddress is the address for the telemetry HTTP server.
	// Default: "127.0.0.1:9570"
	ListenAddress string `yaml:"listen_address"`

	// Path is the metrics endpoint path.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "saturn"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem label.
	// Default: "retention"
	Subsystem string `yaml:"subsystem"`
}

// MetricsEnabled reports the effective metrics setting, defaulting to true.
func (c MetricsConfig) MetricsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// HealthConfig contains health probe configuration.
type HealthConfig struct {
	// Enabled controls whether health endpoints are served.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// CheckTimeout is the per-check timeout.
	// Default: 5s
	CheckTimeout time.Duration `yaml:"check_timeout"`
}

// HealthEnabled reports the effective health setting, defaulting to true.
func (c HealthConfig) HealthEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}
