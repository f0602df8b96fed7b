// Package db stores a published catalog in SQLite so it can be shipped and
// loaded without the YAML source.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps a connection pool to one catalog database.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates the pool for path and checks it is reachable. The file is
// created if missing; call Migrate before the first Seed.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("failed to open database: empty path")
	}

	// Open connection pool (doesn't actually connect yet)
	pool, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pool.SetMaxOpenConns(8)
	pool.SetMaxIdleConns(4)
	pool.SetConnMaxLifetime(0) // SQLite is local

	if _, err := pool.Exec("PRAGMA journal_mode=WAL"); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if _, err := pool.Exec("PRAGMA busy_timeout=5000"); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := pool.Ping(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: pool, path: path}, nil
}

// Path returns the database file the store was opened on.
func (s *Store) Path() string {
	return s.path
}

// Close releases the pool.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS posts (
	id         INTEGER PRIMARY KEY,
	position   INTEGER NOT NULL,
	category   TEXT NOT NULL,
	title      TEXT NOT NULL,
	summary    TEXT NOT NULL DEFAULT '',
	body       TEXT NOT NULL DEFAULT '',
	link       TEXT NOT NULL DEFAULT '',
	featured   INTEGER NOT NULL DEFAULT 0,
	read_time  TEXT NOT NULL DEFAULT '',
	date       TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS courses (
	id         INTEGER PRIMARY KEY,
	position   INTEGER NOT NULL,
	title      TEXT NOT NULL,
	tagline    TEXT NOT NULL DEFAULT '',
	modules    INTEGER NOT NULL DEFAULT 0,
	duration   TEXT NOT NULL DEFAULT '',
	price      TEXT NOT NULL DEFAULT '',
	href       TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS testimonials (
	position   INTEGER PRIMARY KEY,
	quote      TEXT NOT NULL,
	name       TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	result     TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS meta (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL
);
`

// Migrate creates the catalog tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
