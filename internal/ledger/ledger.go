// Package ledger keeps a SQLite record of merge runs, one row per topic.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/agentstation/trendkit/pkg/constants"
	"github.com/agentstation/trendkit/pkg/errors"
	"github.com/agentstation/trendkit/pkg/reconcile"
)

// Entry is one recorded topic result.
type Entry struct {
	ID             int64     `json:"id" yaml:"id"`
	RunID          string    `json:"run_id" yaml:"run_id"`
	RecordedAt     time.Time `json:"recorded_at" yaml:"recorded_at"`
	Dir            string    `json:"dir" yaml:"dir"`
	Topic          string    `json:"topic" yaml:"topic"`
	Files          int       `json:"files" yaml:"files"`
	RawStatus      string    `json:"raw_status" yaml:"raw_status"`
	AdjustedStatus string    `json:"adjusted_status" yaml:"adjusted_status"`
	Anchor         string    `json:"anchor,omitempty" yaml:"anchor,omitempty"`
	RawPath        string    `json:"raw_path,omitempty" yaml:"raw_path,omitempty"`
	AdjustedPath   string    `json:"adjusted_path,omitempty" yaml:"adjusted_path,omitempty"`
	Error          string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// Ledger is a SQLite-backed run ledger. It satisfies reconcile.Recorder.
type Ledger struct {
	db  *sql.DB
	now func() time.Time
}

var _ reconcile.Recorder = (*Ledger)(nil)

// Open opens or creates the ledger database at path.
func Open(ctx context.Context, path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("create", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	// One connection serializes writers and keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	l := &Ledger{db: db, now: time.Now}
	if err := l.initSchema(ctx); err != nil {
		db.Close() //nolint:errcheck,gosec // already failing
		return nil, fmt.Errorf("failed to initialize ledger schema: %w", err)
	}
	return l, nil
}

// initSchema creates the ledger tables if they don't exist.
func (l *Ledger) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		recorded_at TEXT NOT NULL,
		dir TEXT NOT NULL,
		topic TEXT NOT NULL,
		files INTEGER NOT NULL DEFAULT 0,
		raw_status TEXT NOT NULL,
		adjusted_status TEXT NOT NULL,
		anchor TEXT,
		raw_path TEXT,
		adjusted_path TEXT,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_results_run_id ON results(run_id);
	`

	_, err := l.db.ExecContext(ctx, schema)
	return err
}

// Close closes the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Record stores one topic result under runID.
func (l *Ledger) Record(ctx context.Context, runID string, result reconcile.Result) error {
	var errText sql.NullString
	if result.Err != nil {
		errText = sql.NullString{String: result.Err.Error(), Valid: true}
	}

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO results (
			run_id, recorded_at, dir, topic, files,
			raw_status, adjusted_status, anchor, raw_path, adjusted_path, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		l.now().UTC().Format(time.RFC3339Nano),
		result.Dir,
		result.Topic,
		len(result.Files),
		string(result.Raw.Status),
		string(result.Adjusted.Status),
		nullString(result.Anchor),
		nullString(result.RawPath),
		nullString(result.AdjustedPath),
		errText,
	)
	if err != nil {
		return fmt.Errorf("failed to record %s/%s: %w", result.Dir, result.Topic, err)
	}
	return nil
}

// List returns the most recent entries first. A limit of zero or less returns all.
func (l *Ledger) List(ctx context.Context, limit int) ([]Entry, error) {
	query := selectEntries + ` ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return l.query(ctx, query, args...)
}

// Run returns the entries of one run in the order they were recorded.
func (l *Ledger) Run(ctx context.Context, runID string) ([]Entry, error) {
	entries, err := l.query(ctx, selectEntries+` WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.NewNotFoundError("run", runID)
	}
	return entries, nil
}

const selectEntries = `
	SELECT id, run_id, recorded_at, dir, topic, files,
	       raw_status, adjusted_status, anchor, raw_path, adjusted_path, error
	FROM results`

func (l *Ledger) query(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only

	var entries []Entry
	for rows.Next() {
		var e Entry
		var recordedAt string
		var anchor, rawPath, adjustedPath, errText sql.NullString

		if err := rows.Scan(
			&e.ID, &e.RunID, &recordedAt, &e.Dir, &e.Topic, &e.Files,
			&e.RawStatus, &e.AdjustedStatus, &anchor, &rawPath, &adjustedPath, &errText,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}

		e.RecordedAt, _ = time.Parse(time.RFC3339Nano, recordedAt)
		e.Anchor = anchor.String
		e.RawPath = rawPath.String
		e.AdjustedPath = adjustedPath.String
		e.Error = errText.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
