// Package history persists recent transcript lookups in SQLite so the UI
// can offer past videos again. Correction results themselves are never
// persisted; only per-lookup counts are kept for diagnostics.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS lookups (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    video_id TEXT NOT NULL,
    url TEXT NOT NULL,
    segments INTEGER NOT NULL DEFAULT 0,
    changed INTEGER NOT NULL DEFAULT 0,
    degraded INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_lookups_created_at ON lookups(created_at);
`

// Entry is one recorded transcript lookup.
type Entry struct {
	ID        int64     `json:"id"`
	VideoID   string    `json:"videoId"`
	URL       string    `json:"url"`
	Segments  int       `json:"segments"`
	Changed   int       `json:"changed"`
	Degraded  int       `json:"degraded"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store manages lookup history backed by SQLite.
type Store struct {
	db    *sql.DB
	path  string
	limit int
}

// Open initializes or connects to the history database.
func Open(path string, limit int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}
	return &Store{db: db, path: path, limit: limit}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts a lookup and prunes entries beyond the retention limit.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lookups (video_id, url, segments, changed, degraded, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		entry.VideoID, entry.URL, entry.Segments, entry.Changed, entry.Degraded, timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert lookup: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM lookups WHERE id NOT IN (
            SELECT id FROM lookups ORDER BY id DESC LIMIT ?
        )`, s.limit,
	)
	if err != nil {
		return fmt.Errorf("prune lookups: %w", err)
	}
	return nil
}

// Recent returns up to n lookups, newest first. n <= 0 uses the retention
// limit.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 || n > s.limit {
		n = s.limit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, video_id, url, segments, changed, degraded, created_at
         FROM lookups ORDER BY id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query lookups: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var createdAt string
		if err := rows.Scan(&entry.ID, &entry.VideoID, &entry.URL,
			&entry.Segments, &entry.Changed, &entry.Degraded, &createdAt); err != nil {
			return nil, fmt.Errorf("scan lookup: %w", err)
		}
		if parsed, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			entry.CreatedAt = parsed
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Clear removes all recorded lookups.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM lookups"); err != nil {
		return fmt.Errorf("clear lookups: %w", err)
	}
	return nil
}
