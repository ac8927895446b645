package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"veridian-hq/saturn/pkg/config"
)

// Collector owns the Prometheus registry and all metric groups for Saturn.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Retention run metrics
	retentionMetrics *RetentionMetrics
}

// NewCollector creates a metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a new registry is used.
//
// Example:
//
//	cfg := &config.MetricsConfig{Namespace: "saturn", Subsystem: "retention"}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = "saturn"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "retention"
	}

	return &Collector{
		config:           cfg,
		registry:         registry,
		retentionMetrics: NewRetentionMetrics(cfg, registry),
	}
}

// Retention returns the retention run metrics group.
func (c *Collector) Retention() *RetentionMetrics {
	return c.retentionMetrics
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
