// Package history persists raw exchanges to a SQLite database so runs
// can be inspected after the fact. Recording is optional and never
// affects scenario execution; a failed insert is the caller's to report.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/abdul-hamid-achik/wirecheck/packages/scenario"
)

const schema = `
CREATE TABLE IF NOT EXISTS exchanges (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	scenario    TEXT NOT NULL,
	started_at  TIMESTAMP NOT NULL,
	duration_ms INTEGER NOT NULL,
	status_code INTEGER,
	request     BLOB NOT NULL,
	response    BLOB,
	error       TEXT
);
CREATE INDEX IF NOT EXISTS idx_exchanges_run ON exchanges(run_id);
`

const queryTimeout = 5 * time.Second

// Store is a handle to the exchange database.
type Store struct {
	db *sql.DB
}

// Entry is one recorded exchange.
type Entry struct {
	ID         int64
	RunID      string
	Scenario   string
	StartedAt  time.Time
	Duration   time.Duration
	StatusCode int // 0 when the peer sent no parseable status line
	Request    []byte
	Response   []byte
	Error      string
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing history database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// NewRunID returns an identifier grouping the exchanges of one run.
func NewRunID() string {
	return uuid.NewString()
}

// Record stores one exchange under the given run id.
func (s *Store) Record(runID string, r *scenario.Result) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	statusCode := 0
	if sl, ok := r.StatusLine(); ok {
		statusCode = sl.Code
	}

	errText := ""
	if r.Err != nil {
		errText = r.Err.Error()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exchanges (run_id, scenario, started_at, duration_ms, status_code, request, response, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, r.Scenario.Name, r.StartedAt, r.Duration.Milliseconds(),
		statusCode, r.RequestBytes, r.Raw, errText)
	if err != nil {
		return fmt.Errorf("recording exchange %q: %w", r.Scenario.Name, err)
	}
	return nil
}

// Recent returns the latest exchanges, newest first. A non-empty runID
// restricts the listing to one run.
func (s *Store) Recent(runID string, limit int) ([]*Entry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	query := `SELECT id, run_id, scenario, started_at, duration_ms, status_code, request, response, error
	          FROM exchanges`
	args := []any{}
	if runID != "" {
		query += ` WHERE run_id = ?`
		args = append(args, runID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		var durationMs int64
		if err := rows.Scan(&e.ID, &e.RunID, &e.Scenario, &e.StartedAt, &durationMs,
			&e.StatusCode, &e.Request, &e.Response, &e.Error); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history rows: %w", err)
	}
	return entries, nil
}
