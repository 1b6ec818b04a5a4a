// Package store provides the keyed text-blob store backing linkapp's local
// state. It is the desktop counterpart of the browser build's localStorage:
// a handful of named JSON blobs, read and written whole.
//
// Design: WAL mode with a busy timeout balances durability and concurrency.
// WAL allows a reader (the MCP server) while the CLI writes. The 5-second
// busy timeout prevents "database is locked" errors without waiting forever
// on a stuck connection.
package store

import (
	"context"
	"database/sql"
	"fmt"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// Well-known blob keys. The names are frozen: they match the localStorage
// keys of the browser build, so a dumped localStorage can seed the store.
const (
	KeyData       = "linkapp-data"
	KeySessions   = "linkapp-sessions"
	KeyActiveSave = "linkapp-active-save-name"
)

// Store is a keyed text-blob store over SQLite.
type Store struct {
	db *sql.DB
}

// Open opens the database file at path and returns a configured Store.
// The caller should call Close on the returned store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	for _, pragma := range []string{
		`PRAGMA journal_mode=WAL`,
		`PRAGMA busy_timeout=5000`,
		`PRAGMA synchronous=NORMAL`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	return &Store{db: db}, nil
}

// Init creates the blob table if it doesn't exist. Safe to call multiple
// times.
func (s *Store) Init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			name       TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("creating kv table: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for diagnostics.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Get returns the blob stored under name. ok is false when nothing is
// stored.
func (s *Store) Get(ctx context.Context, name string) (value string, ok bool, err error) {
	err = s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE name = ?`, name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", name, err)
	}
	return value, true, nil
}

// Put stores value under name, replacing any previous blob.
func (s *Store) Put(ctx context.Context, name, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (name, value, updated_at) VALUES (?, ?, unixepoch())
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		name, value)
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// Delete removes the blob stored under name. Deleting a missing blob is not
// an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE name = ?`, name); err != nil {
		return fmt.Errorf("deleting %s: %w", name, err)
	}
	return nil
}
