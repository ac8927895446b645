package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"veridian-hq/saturn/pkg/retention"
)

// Store persists run reports so operators can reconstruct every retention
// decision after the fact: one row per run, one row per policy outcome.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Config configures the audit store.
type Config struct {
	// Path is the audit database file path.
	Path string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	dry_run     INTEGER NOT NULL,
	started_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL,
	policies    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS outcomes (
	id             TEXT PRIMARY KEY,
	run_id         TEXT NOT NULL REFERENCES runs(run_id),
	seq            INTEGER NOT NULL,
	policy_name    TEXT NOT NULL,
	kind           TEXT NOT NULL,
	missing_field  TEXT,
	retention_days INTEGER,
	cutoff         TIMESTAMP,
	mode           TEXT,
	count          INTEGER,
	error          TEXT
);

CREATE INDEX IF NOT EXISTS idx_outcomes_run_id ON outcomes(run_id);
CREATE INDEX IF NOT EXISTS idx_outcomes_policy_name ON outcomes(policy_name);
`

// NewStore opens (creating if necessary) the audit database.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("audit db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.Path, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, NewAuditError("open", err)
	}

	// SQLite only supports a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, NewAuditError("create_schema", err)
	}

	logger := slog.Default().With("component", "audit.store")
	logger.Info("audit store initialized", "path", cfg.Path)

	return &Store{
		db:     db,
		path:   cfg.Path,
		logger: logger,
	}, nil
}

// RecordRun persists a run report and all of its outcomes in one
// transaction. Outcome sequence numbers preserve the evaluation order.
func (s *Store) RecordRun(ctx context.Context, report *retention.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NewAuditError("begin", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, dry_run, started_at, finished_at, policies)
		 VALUES (?, ?, ?, ?, ?)`,
		report.RunID, report.DryRun, report.StartedAt, report.FinishedAt, len(report.Outcomes),
	)
	if err != nil {
		return NewAuditError("insert_run", err)
	}

	for seq, outcome := range report.Outcomes {
		var (
			mode   interface{}
			count  interface{}
			cutoff interface{}
		)
		if outcome.Result != nil {
			mode = string(outcome.Result.Mode)
			count = outcome.Result.Count
		}
		if !outcome.Cutoff.IsZero() {
			cutoff = outcome.Cutoff
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO outcomes
				(id, run_id, seq, policy_name, kind, missing_field, retention_days, cutoff, mode, count, error)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), report.RunID, seq,
			outcome.PolicyName, string(outcome.Kind),
			nullable(outcome.MissingField), outcome.RetentionDays, cutoff,
			mode, count, nullable(outcome.Error),
		)
		if err != nil {
			return NewAuditError("insert_outcome", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return NewAuditError("commit", err)
	}

	s.logger.Debug("recorded run",
		"run_id", report.RunID,
		"outcome_count", len(report.Outcomes),
	)

	return nil
}

// RunSummary is one row of run history.
type RunSummary struct {
	RunID      string
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Policies   int
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, dry_run, started_at, finished_at, policies
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, NewAuditError("list_runs", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.RunID, &r.DryRun, &r.StartedAt, &r.FinishedAt, &r.Policies); err != nil {
			return nil, NewAuditError("scan_run", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, NewAuditError("list_runs", err)
	}

	return runs, nil
}

// OutcomeRecord is one persisted policy outcome.
type OutcomeRecord struct {
	RunID         string
	Seq           int
	PolicyName    string
	Kind          string
	MissingField  string
	RetentionDays int
	Cutoff        time.Time
	Mode          string
	Count         int64
	Error         string
}

// RunOutcomes returns the outcomes of one run in evaluation order.
func (s *Store) RunOutcomes(ctx context.Context, runID string) ([]OutcomeRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, seq, policy_name, kind, missing_field, retention_days, cutoff, mode, count, error
		 FROM outcomes WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, NewAuditError("run_outcomes", err)
	}
	defer rows.Close()

	var outcomes []OutcomeRecord
	for rows.Next() {
		var (
			o            OutcomeRecord
			missingField sql.NullString
			cutoff       sql.NullTime
			mode         sql.NullString
			count        sql.NullInt64
			errMsg       sql.NullString
		)
		err := rows.Scan(&o.RunID, &o.Seq, &o.PolicyName, &o.Kind,
			&missingField, &o.RetentionDays, &cutoff, &mode, &count, &errMsg)
		if err != nil {
			return nil, NewAuditError("scan_outcome", err)
		}
		o.MissingField = missingField.String
		o.Cutoff = cutoff.Time
		o.Mode = mode.String
		o.Count = count.Int64
		o.Error = errMsg.String
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, NewAuditError("run_outcomes", err)
	}

	return outcomes, nil
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return NewAuditError("ping", err)
	}
	return nil
}

// Close closes the audit database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return NewAuditError("close", err)
	}
	return nil
}

// nullable converts empty strings to NULL.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
