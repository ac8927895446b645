package main

import (
	"fmt"
	"log/slog"

	"veridian-hq/saturn/pkg/cli"
	"veridian-hq/saturn/pkg/config"
	"veridian-hq/saturn/pkg/telemetry/logging"
)

// initConfig loads the configuration file and installs the process logger.
// Every subcommand that touches the database or the policies file goes
// through here first.
func initConfig() (*config.Config, error) {
	if err := config.Initialize(cfgFile); err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:          cfg.Telemetry.Logging.Level,
		Format:         cfg.Telemetry.Logging.Format,
		AddSource:      cfg.Telemetry.Logging.AddSource,
		RedactPII:      cfg.Telemetry.Logging.RedactPIIEnabled(),
		RedactPatterns: cfg.Telemetry.Logging.RedactPatterns,
	})
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)

	return cfg, nil
}
