package engine

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteConfig contains configuration for the SQLite retention engine.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite engine configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/saturn.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteEngine implements Engine against a SQLite database.
type SQLiteEngine struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// identifierPattern restricts table and column names to plain SQL
// identifiers. Names are quoted in generated statements as well; the check
// exists so a typo in configuration fails loudly instead of producing
// surprising SQL.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// NewSQLiteEngine opens the target database and returns a retention engine
// bound to it.
func NewSQLiteEngine(config *SQLiteConfig) (*SQLiteEngine, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "retention.engine.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, NewEngineError("", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	e := &SQLiteEngine{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := e.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite retention engine initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return e, nil
}

// initialize applies connection pragmas.
func (e *SQLiteEngine) initialize() error {
	if e.config.WALMode {
		if _, err := e.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewEngineError("", "enable_wal", err)
		}
		e.logger.Debug("WAL mode enabled")
	}

	busyTimeoutMs := e.config.BusyTimeout.Milliseconds()
	if _, err := e.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return NewEngineError("", "set_busy_timeout", err)
	}

	return nil
}

// Apply previews or executes a single retention operation. The target table
// and date column are resolved against the schema first so a misconfigured
// policy fails with ErrNoSuchTable or ErrNoSuchColumn rather than a raw
// SQL error.
func (e *SQLiteEngine) Apply(ctx context.Context, req Request) (Result, error) {
	if err := e.resolveTarget(ctx, req.Table, req.DateColumn); err != nil {
		return Result{}, err
	}

	cutoff := req.Cutoff.UTC()

	if req.DryRun {
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %q WHERE %q < ?`, req.Table, req.DateColumn)

		var count int64
		if err := e.db.QueryRowContext(ctx, query, cutoff).Scan(&count); err != nil {
			return Result{}, NewEngineError(req.Table, "preview", err)
		}

		e.logger.Debug("previewed retention operation",
			"table", req.Table,
			"date_column", req.DateColumn,
			"cutoff", cutoff,
			"candidate_count", count,
		)

		return Result{Mode: ModePreview, Count: count}, nil
	}

	query := fmt.Sprintf(`DELETE FROM %q WHERE %q < ?`, req.Table, req.DateColumn)

	res, err := e.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return Result{}, NewEngineError(req.Table, "execute", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return Result{}, NewEngineError(req.Table, "execute", err)
	}

	e.logger.Info("executed retention operation",
		"table", req.Table,
		"date_column", req.DateColumn,
		"cutoff", cutoff,
		"deleted_count", deleted,
	)

	return Result{Mode: ModeExecuted, Count: deleted}, nil
}

// resolveTarget verifies the table exists and carries the date column.
func (e *SQLiteEngine) resolveTarget(ctx context.Context, table, column string) error {
	if !identifierPattern.MatchString(table) {
		return NewEngineError(table, "resolve",
			fmt.Errorf("%w: table %q", ErrInvalidIdentifier, table))
	}
	if !identifierPattern.MatchString(column) {
		return NewEngineError(table, "resolve",
			fmt.Errorf("%w: column %q", ErrInvalidIdentifier, column))
	}

	var name string
	err := e.db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
	).Scan(&name)
	if err == sql.ErrNoRows {
		return NewEngineError(table, "resolve",
			fmt.Errorf("%w: %q", ErrNoSuchTable, table))
	}
	if err != nil {
		return NewEngineError(table, "resolve", err)
	}

	rows, err := e.db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%q)`, table))
	if err != nil {
		return NewEngineError(table, "resolve", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			colName    string
			colType    string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &defaultVal, &pk); err != nil {
			return NewEngineError(table, "resolve", err)
		}
		if colName == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return NewEngineError(table, "resolve", err)
	}

	return NewEngineError(table, "resolve",
		fmt.Errorf("%w: %q on table %q", ErrNoSuchColumn, column, table))
}

// Ping verifies database connectivity.
func (e *SQLiteEngine) Ping(ctx context.Context) error {
	if err := e.db.PingContext(ctx); err != nil {
		return NewEngineError("", "ping", err)
	}
	return nil
}

// Close closes the database connection.
func (e *SQLiteEngine) Close() error {
	if err := e.db.Close(); err != nil {
		return NewEngineError("", "close", err)
	}
	return nil
}
