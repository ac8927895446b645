package main

import (
	"testing"

	"veridian-hq/saturn/pkg/retention"
)

func TestVersionCommandExists(t *testing.T) {
	if versionCmd == nil {
		t.Fatal("versionCmd is nil")
	}
	if versionCmd.Use != "version" {
		t.Errorf("versionCmd.Use = %q, want %q", versionCmd.Use, "version")
	}
	if versionCmd.Run == nil {
		t.Error("versionCmd.Run should not be nil")
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"run":      false,
		"serve":    false,
		"validate": false,
		"policies": false,
		"history":  false,
		"version":  false,
	}

	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestOutcomeDetailFormatting(t *testing.T) {
	missing := retention.Outcome{
		Kind:         retention.OutcomeInvalidMissingField,
		MissingField: "date_column",
	}
	if got := outcomeDetail(missing); got != "missing field date_column" {
		t.Errorf("outcomeDetail() = %q", got)
	}

	failed := retention.Outcome{
		Kind:  retention.OutcomeFailed,
		Error: "no such table",
	}
	if got := outcomeDetail(failed); got != "no such table" {
		t.Errorf("outcomeDetail() = %q", got)
	}

	skipped := retention.Outcome{Kind: retention.OutcomeSkippedDisabled}
	if got := outcomeDetail(skipped); got != "" {
		t.Errorf("outcomeDetail() = %q, want empty", got)
	}
}
