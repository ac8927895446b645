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

var policiesFlags struct {
	output string
}

var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List configured retention policies",
	Long: `List every policy in the policies file with its resolved state.

Examples:
  saturn policies
  saturn policies --output json`,
	RunE: runPolicies,
}

func init() {
	rootCmd.AddCommand(policiesCmd)

	policiesCmd.Flags().StringVarP(&policiesFlags.output, "output", "o", "text", "output format (text, json)")
}

// policyListing is the JSON shape of one listed policy.
type policyListing struct {
	PolicyName    string `json:"policy_name"`
	TableName     string `json:"table_name,omitempty"`
	DateColumn    string `json:"date_column,omitempty"`
	RetentionDays *int   `json:"retention_days,omitempty"`
	Enabled       bool   `json:"enabled"`
	Status        string `json:"status"`
	Detail        string `json:"detail,omitempty"`
}

func runPolicies(cmd *cobra.Command, args []string) error {
	cfg, err := initConfig()
	if err != nil {
		return err
	}

	policies, err := store.New(cfg.Policies.Path, slog.Default()).Load()
	if err != nil {
		return cli.NewCommandError("policies", err)
	}

	listings := make([]policyListing, 0, len(policies))
	for _, raw := range policies {
		l := policyListing{
			PolicyName:    raw.PolicyName,
			TableName:     raw.TableName,
			DateColumn:    raw.DateColumn,
			RetentionDays: raw.RetentionDays,
			Enabled:       raw.IsEnabled(),
		}

		switch {
		case !raw.IsEnabled():
			l.Status = "disabled"
		default:
			if _, rejection := policy.Resolve(raw); rejection != nil {
				l.Status = "invalid"
				l.Detail = rejection.String()
			} else {
				l.Status = "valid"
			}
		}

		listings = append(listings, l)
	}

	if cli.OutputFormat(policiesFlags.output) == cli.FormatJSON {
		return cli.WriteJSON(os.Stdout, listings)
	}

	table := cli.NewTable(os.Stdout, "POLICY", "TABLE", "DATE COLUMN", "DAYS", "STATUS")
	for _, l := range listings {
		days := "-"
		if l.RetentionDays != nil {
			days = fmt.Sprintf("%d", *l.RetentionDays)
		}
		name := l.PolicyName
		if name == "" {
			name = "(unnamed)"
		}
		table.Row(name, l.TableName, l.DateColumn, days, l.Status)
	}
	return table.Flush()
}
