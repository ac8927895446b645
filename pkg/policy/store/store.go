package store

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"veridian-hq/saturn/pkg/policy"
)

// document is the shape of the policies file. Policies live under the
// top-level retention_policies key; everything else is ignored.
type document struct {
	RetentionPolicies []policy.RawPolicy `yaml:"retention_policies"`
}

// Store loads retention policies from a YAML file on disk.
type Store struct {
	path   string
	logger *slog.Logger
}

// New creates a policy store reading from the given file path.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:   path,
		logger: logger.With("component", "policy.store"),
	}
}

// Path returns the policies file path the store reads from.
func (s *Store) Path() string {
	return s.path
}

// Load reads and parses the policies file, returning the raw policies in
// document order.
//
// A missing file is not fatal: the loader logs a warning and returns an empty
// list so the orchestrator can run a no-op pass. A file that exists but does
// not parse is a startup error and is returned as a *ParseError; an
// unreadable file is returned as a *ReadError.
func (s *Store) Load() ([]policy.RawPolicy, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("policies file not found, loading zero policies",
				"path", s.path,
			)
			return nil, nil
		}
		return nil, &ReadError{Path: s.path, Cause: err}
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: s.path, Cause: err}
	}

	s.warnDuplicates(doc.RetentionPolicies)

	s.logger.Info("loaded retention policies",
		"path", s.path,
		"policy_count", len(doc.RetentionPolicies),
	)

	return doc.RetentionPolicies, nil
}

// warnDuplicates flags repeated policy names. Names correlate audit records,
// so duplicates make run output ambiguous, but they are not a load failure.
func (s *Store) warnDuplicates(policies []policy.RawPolicy) {
	seen := make(map[string]bool, len(policies))
	for _, p := range policies {
		if p.PolicyName == "" {
			continue
		}
		if seen[p.PolicyName] {
			s.logger.Warn("duplicate policy_name in policies file",
				"policy_name", p.PolicyName,
				"path", s.path,
			)
		}
		seen[p.PolicyName] = true
	}
}

// Parse parses a policies document from raw bytes. It is used by the
// validate command and by the watcher to check a candidate file before
// swapping it in.
func Parse(data []byte) ([]policy.RawPolicy, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse policies document: %w", err)
	}
	return doc.RetentionPolicies, nil
}
