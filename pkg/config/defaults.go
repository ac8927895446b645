package config

import "time"

// Default values for configuration fields.
const (
	// Database defaults
	DefaultDatabasePath         = "data/saturn.db"
	DefaultDatabaseMaxOpenConns = 10
	DefaultDatabaseMaxIdleConns = 5
	DefaultDatabaseWALMode      = true
	DefaultDatabaseBusyTimeout  = 5 * time.Second

	// Policies defaults
	DefaultPoliciesPath     = "config/retention_policies.yaml"
	DefaultPoliciesWatch    = false
	DefaultPoliciesDebounce = 250 * time.Millisecond

	// Retention defaults
	DefaultRetentionSchedule = "0 3 * * *"

	// Audit defaults
	DefaultAuditPath        = "data/audit.db"
	DefaultAuditBusyTimeout = 5 * time.Second

	// Telemetry defaults
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "json"
	DefaultMetricsListenAddr  = "127.0.0.1:9570"
	DefaultMetricsPath        = "/metrics"
	DefaultMetricsNamespace   = "saturn"
	DefaultMetricsSubsystem   = "retention"
	DefaultHealthCheckTimeout = 5 * time.Second
)

// ApplyDefaults fills in default values for any unset configuration fields.
// Pointer-typed booleans keep their nil-means-default semantics and are not
// materialized here.
func ApplyDefaults(cfg *Config) {
	// Database
	if cfg.Database.Path == "" {
		cfg.Database.Path = DefaultDatabasePath
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = DefaultDatabaseMaxOpenConns
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = DefaultDatabaseMaxIdleConns
	}
	if cfg.Database.BusyTimeout == 0 {
		cfg.Database.BusyTimeout = DefaultDatabaseBusyTimeout
	}

	// Policies
	if cfg.Policies.Path == "" {
		cfg.Policies.Path = DefaultPoliciesPath
	}
	if cfg.Policies.DebounceInterval == 0 {
		cfg.Policies.DebounceInterval = DefaultPoliciesDebounce
	}

	// Retention
	if cfg.Retention.Schedule == "" {
		cfg.Retention.Schedule = DefaultRetentionSchedule
	}

	// Audit
	if cfg.Audit.Path == "" {
		cfg.Audit.Path = DefaultAuditPath
	}
	if cfg.Audit.BusyTimeout == 0 {
		cfg.Audit.BusyTimeout = DefaultAuditBusyTimeout
	}

	// Telemetry
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddr
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Telemetry.Health.CheckTimeout == 0 {
		cfg.Telemetry.Health.CheckTimeout = DefaultHealthCheckTimeout
	}
}
