// Package history persists analysis runs in SQLite so past comparisons can
// be listed and re-exported.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nordique-ai/nordique/internal/core"
	"github.com/nordique-ai/nordique/internal/session"
)

//go:embed migrations/001_initial_schema.sql
var migrationV1 string

// Store is a SQLite-backed log of analysis runs.
type Store struct {
	dbPath string
	db     *sql.DB
	mu     sync.RWMutex
}

// Open creates (or opens) the history database at dbPath and runs
// migrations.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{dbPath: dbPath, db: db}
	if err := s.migrate(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("running migrations: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		// Table doesn't exist yet, run initial migration
		version = 0
	}

	if version < 1 {
		if _, err := s.db.Exec(migrationV1); err != nil {
			return fmt.Errorf("applying migration v1: %w", err)
		}
	}
	return nil
}

// Save persists one analysis run.
func (s *Store) Save(ctx context.Context, entry session.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settingsJSON, err := json.Marshal(entry.Settings)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	responsesJSON, err := json.Marshal(entry.Responses)
	if err != nil {
		return fmt.Errorf("marshaling responses: %w", err)
	}
	resultJSON, err := json.Marshal(entry.Result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO analyses (id, created_at, settings, responses, result)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Timestamp.UTC().Format(time.RFC3339Nano),
		string(settingsJSON),
		string(responsesJSON),
		string(resultJSON),
	)
	if err != nil {
		return core.ErrState(core.CodeHistoryCorrupted, "saving analysis").WithCause(err)
	}
	return nil
}

// Get loads one analysis run by id.
func (s *Store) Get(ctx context.Context, id string) (session.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, settings, responses, result
		FROM analyses WHERE id = ?`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Entry{}, core.ErrNotFound("analysis", id)
	}
	return entry, err
}

// List returns up to limit runs, newest first. A non-positive limit lists
// everything.
func (s *Store) List(ctx context.Context, limit int) ([]session.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, created_at, settings, responses, result
		FROM analyses ORDER BY created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, core.ErrState(core.CodeHistoryCorrupted, "listing analyses").WithCause(err)
	}
	defer rows.Close()

	var entries []session.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, core.ErrState(core.CodeHistoryCorrupted, "listing analyses").WithCause(err)
	}
	return entries, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (session.Entry, error) {
	var entry session.Entry
	var createdAt, settingsJSON, responsesJSON, resultJSON string

	if err := row.Scan(&entry.ID, &createdAt, &settingsJSON, &responsesJSON, &resultJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Entry{}, err
		}
		return session.Entry{}, core.ErrState(core.CodeHistoryCorrupted, "scanning analysis row").WithCause(err)
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return session.Entry{}, core.ErrState(core.CodeHistoryCorrupted, "parsing timestamp").WithCause(err)
	}
	entry.Timestamp = ts

	if err := json.Unmarshal([]byte(settingsJSON), &entry.Settings); err != nil {
		return session.Entry{}, core.ErrState(core.CodeHistoryCorrupted, "decoding settings").WithCause(err)
	}
	if err := json.Unmarshal([]byte(responsesJSON), &entry.Responses); err != nil {
		return session.Entry{}, core.ErrState(core.CodeHistoryCorrupted, "decoding responses").WithCause(err)
	}
	if err := json.Unmarshal([]byte(resultJSON), &entry.Result); err != nil {
		return session.Entry{}, core.ErrState(core.CodeHistoryCorrupted, "decoding result").WithCause(err)
	}
	return entry, nil
}
