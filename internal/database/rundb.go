package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/onitasu/lp-ai-analyzer/internal/model"
)

// RunDB provides SQLite-based storage for analysis run history.
// It manages connection pooling and provides methods for saving and
// listing runs.
//
// Design decision: We use a single database file for all runs rather
// than one file per target. This keeps history queries across targets
// simple and makes backup a single-file copy.
type RunDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RunDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, "lpanalyzer.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; readers share the WAL.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// Path returns the database file location.
func (rdb *RunDB) Path() string {
	return rdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	-- Runs store one analysis invocation each, with the validated result
	-- serialized as interchange JSON.
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		title TEXT,
		genre TEXT NOT NULL,
		provider TEXT NOT NULL,
		model_name TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		attempts INTEGER NOT NULL DEFAULT 1,
		status TEXT NOT NULL,
		error TEXT,
		result_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_url ON runs(url);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// run statuses stored in the status column.
const (
	statusComplete = "complete"
	statusFailed   = "failed"
)

// SaveRun persists one analysis run, successful or failed.
func (rdb *RunDB) SaveRun(ctx context.Context, report *model.Report) (int64, error) {
	status := statusComplete
	var resultJSON sql.NullString
	if report.Succeeded() {
		data, err := json.Marshal(report.Result)
		if err != nil {
			return 0, fmt.Errorf("failed to serialize result: %w", err)
		}
		resultJSON = sql.NullString{String: string(data), Valid: true}
	} else {
		status = statusFailed
	}

	query := `
	INSERT INTO runs (url, title, genre, provider, model_name, attempts, status, error, result_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := rdb.db.ExecContext(ctx, query,
		report.URL,
		report.Title,
		string(report.Genre),
		string(report.Provider),
		report.ModelName,
		report.Attempts,
		status,
		report.ErrorMessage,
		resultJSON,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	return result.LastInsertId()
}

// RunRecord is one stored analysis run.
type RunRecord struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// Report is the reconstructed run report.
	Report *model.Report
}

// RecentRuns returns the most recent runs, newest first.
// A limit of zero or less returns all runs.
func (rdb *RunDB) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `
	SELECT id, url, title, genre, provider, model_name, created_at, attempts, status, error, result_json
	FROM runs
	ORDER BY created_at DESC, id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// RunsForURL returns all stored runs for one target URL, newest first.
func (rdb *RunDB) RunsForURL(ctx context.Context, url string) ([]RunRecord, error) {
	query := `
	SELECT id, url, title, genre, provider, model_name, created_at, attempts, status, error, result_json
	FROM runs
	WHERE url = ?
	ORDER BY created_at DESC, id DESC
	`

	rows, err := rdb.db.QueryContext(ctx, query, url)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// RunByID retrieves a single run by its database ID.
// Returns nil without error when the ID is unknown.
func (rdb *RunDB) RunByID(ctx context.Context, id int64) (*RunRecord, error) {
	query := `
	SELECT id, url, title, genre, provider, model_name, created_at, attempts, status, error, result_json
	FROM runs
	WHERE id = ?
	`

	row := rdb.db.QueryRowContext(ctx, query, id)
	record, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRun reconstructs a RunRecord from one result row.
func scanRun(row rowScanner) (RunRecord, error) {
	var (
		record     RunRecord
		report     model.Report
		genre      string
		provider   string
		createdAt  string
		status     string
		errMsg     sql.NullString
		resultJSON sql.NullString
	)

	err := row.Scan(
		&record.ID,
		&report.URL,
		&report.Title,
		&genre,
		&provider,
		&report.ModelName,
		&createdAt,
		&report.Attempts,
		&status,
		&errMsg,
		&resultJSON,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, err
		}
		return RunRecord{}, fmt.Errorf("failed to scan run: %w", err)
	}

	report.Genre = model.Genre(genre)
	report.Provider = model.Provider(provider)
	report.AnalyzedAt = parseTimestamp(createdAt)
	if errMsg.Valid {
		report.ErrorMessage = errMsg.String
	}

	if resultJSON.Valid && resultJSON.String != "" {
		var result model.AnalysisResult
		if err := json.Unmarshal([]byte(resultJSON.String), &result); err != nil {
			return RunRecord{}, fmt.Errorf("failed to parse stored result: %w", err)
		}
		report.Result = &result
	}

	record.Report = &report
	return record, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
