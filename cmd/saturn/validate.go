package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"veridian-hq/saturn/pkg/cli"
	"veridian-hq/saturn/pkg/policy"
	"veridian-hq/saturn/pkg/policy/store"
)

var validateFlags struct {
	policies string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the retention policies file",
	Long: `Check the retention policies file without touching the database.

The command parses the file and runs every enabled policy through the same
validation the orchestrator applies: required fields present, retention
window non-negative. Disabled policies are reported as skipped.

The command fails if the file cannot be parsed or any enabled policy would
be rejected. A missing file is reported but is not an error, matching run
behavior (a missing file means a no-op pass).

Examples:
  saturn validate
  saturn validate --policies /etc/saturn/policies.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.policies, "policies", "", "override policies file path")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := initConfig()
	if err != nil {
		return err
	}

	path := cfg.Policies.Path
	if validateFlags.policies != "" {
		path = validateFlags.policies
	}

	policies, err := store.New(path, slog.Default()).Load()
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	if len(policies) == 0 {
		fmt.Printf("No policies found in %s (runs will be no-ops)\n", path)
		return nil
	}

	table := cli.NewTable(os.Stdout, "POLICY", "STATUS", "DETAIL")
	invalid := 0
	for _, raw := range policies {
		name := raw.PolicyName
		if name == "" {
			name = "(unnamed)"
		}

		if !raw.IsEnabled() {
			table.Row(name, "disabled", "")
			continue
		}

		if _, rejection := policy.Resolve(raw); rejection != nil {
			table.Row(name, "invalid", rejection.String())
			invalid++
			continue
		}

		table.Row(name, "valid", "")
	}
	table.Flush()

	if invalid > 0 {
		return cli.NewCommandError("validate",
			cli.NewPolicyCheckError(invalid, len(policies)))
	}

	fmt.Printf("\n%d policies OK\n", len(policies))
	return nil
}
