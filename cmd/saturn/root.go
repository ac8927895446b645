package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"veridian-hq/saturn/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "saturn",
	Short: "Saturn - policy-driven data retention and deletion",
	Long: `Saturn evaluates declaratively configured data-retention policies and
deletes records older than each policy's retention window, under a
mandatory dry-run safety gate.

It is built for compliance teams that must purge personal data on a
regulatory schedule:
  - Policy validation and per-policy outcome reporting
  - Dry-run previews before any destructive operation
  - Durable audit history of every run
  - Cron-scheduled daemon mode with metrics and health probes`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
