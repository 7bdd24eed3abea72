// Package sqlitestore provides a SQLite implementation of domain.Slot.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/tasklist/internal/domain"

	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS slots (
	key        TEXT PRIMARY KEY,
	path       TEXT NOT NULL DEFAULT '/',
	value      BLOB NOT NULL,
	expires_at INTEGER NOT NULL DEFAULT 0
);
`

// Store keeps slots in a SQLite table.
// expires_at is a Unix millisecond timestamp; 0 means no expiry.
type Store struct {
	db    *sql.DB
	clock domain.Clock
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for expiry.
func WithClock(c domain.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// Open opens (or creates) the database at dbPath and ensures the slots table
// exists. The caller is responsible for calling Close.
func Open(dbPath string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1) // prevent SQLITE_BUSY
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{db: db, clock: domain.RealClock{}}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

// Read returns the value stored under key. Expired rows are reported as missing.
func (s *Store) Read(key string) ([]byte, bool, error) {
	var (
		value     []byte
		expiresAt int64
	)
	err := s.db.QueryRow(`SELECT value, expires_at FROM slots WHERE key = ?`, key).
		Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read slot %s: %w", key, err)
	}
	if expiresAt > 0 && s.clock.Now().UnixMilli() >= expiresAt {
		return nil, false, nil
	}
	return value, true, nil
}

// Write replaces the value stored under key.
func (s *Store) Write(key string, value []byte, opts domain.SlotOptions) error {
	var expiresAt int64
	if opts.MaxAge > 0 {
		expiresAt = s.clock.Now().Add(opts.MaxAge).UnixMilli()
	}
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.Exec(`
		INSERT INTO slots (key, path, value, expires_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			path = excluded.path,
			value = excluded.value,
			expires_at = excluded.expires_at`,
		key, opts.Path, value, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

// Ensure Store implements Slot.
var _ domain.Slot = (*Store)(nil)
