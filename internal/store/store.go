package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"sidehustle_server/internal/utils"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	ErrSessionNotFound     = errors.New("builder session not found")
	ErrInvalidRole         = errors.New("invalid message role")
	ErrOpportunityNotFound = errors.New("opportunity not found")
	ErrInvalidOpportunity  = errors.New("invalid opportunity")
	ErrInvalidProfile      = errors.New("invalid user profile")
)

const schema = `
CREATE TABLE IF NOT EXISTS builder_sessions (
	id         TEXT PRIMARY KEY,
	owner      TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_builder_sessions_owner ON builder_sessions(owner, created_at);

CREATE TABLE IF NOT EXISTS builder_messages (
	session_id TEXT NOT NULL REFERENCES builder_sessions(id),
	seq        INTEGER NOT NULL,
	role       TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	PRIMARY KEY (session_id, seq)
);

CREATE TABLE IF NOT EXISTS opportunities (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	title         TEXT NOT NULL,
	company       TEXT NOT NULL,
	description   TEXT NOT NULL,
	link          TEXT NOT NULL,
	remote        INTEGER NOT NULL,
	category      TEXT NOT NULL,
	barrier_level INTEGER NOT NULL,
	score         INTEGER NOT NULL DEFAULT 0,
	reason        TEXT NOT NULL DEFAULT '',
	is_featured   INTEGER NOT NULL DEFAULT 0,
	created_at    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS user_profiles (
	user_id TEXT PRIMARY KEY,
	name    TEXT NOT NULL
);
`

// Store persists builder sessions, opportunities and profiles in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the SQLite database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Printf("Opened SQLite store at %s", path)
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// withRetry runs fn, retrying once after a short delay on transient errors.
func (s *Store) withRetry(ctx context.Context, fn func() error) error {
	err := fn()
	if err != nil && utils.ShouldRetry(err) {
		log.Printf("SQLite call failed, retrying once after delay... Error: %v", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
		err = fn()
	}
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
