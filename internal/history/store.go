// Package history persists a record of finished pack builds in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Build is one recorded build outcome.
type Build struct {
	ID        string
	CreatedAt time.Time
	Mode      string
	Hash      string
	Changed   bool
	Resources int
	Duration  time.Duration
}

// Store is an append-only SQLite record of builds.
// Use ":memory:" for an in-memory database, or a file path for persistence.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (and initializes) the build history database.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		mode TEXT NOT NULL,
		hash TEXT NOT NULL,
		changed INTEGER NOT NULL,
		resources INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_builds_created_at ON builds(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records one finished build.
func (s *Store) Append(ctx context.Context, b Build) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	if b.Changed {
		changed = 1
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO builds (id, created_at, mode, hash, changed, resources, duration_ms) VALUES (?, ?, ?, ?, ?, ?, ?)",
		b.ID, b.CreatedAt.UnixMilli(), b.Mode, b.Hash, changed, b.Resources, b.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert build: %w", err)
	}
	return nil
}

// Recent returns the most recent builds, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Build, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, created_at, mode, hash, changed, resources, duration_ms FROM builds ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		var (
			b          Build
			createdAt  int64
			changed    int
			durationMS int64
		)
		if err := rows.Scan(&b.ID, &createdAt, &b.Mode, &b.Hash, &changed, &b.Resources, &durationMS); err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		b.CreatedAt = time.UnixMilli(createdAt)
		b.Changed = changed != 0
		b.Duration = time.Duration(durationMS) * time.Millisecond
		builds = append(builds, b)
	}
	return builds, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
