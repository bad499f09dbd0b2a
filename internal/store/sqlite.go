package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists artifacts in a single SQLite database, one row per
// (name, suffix) pair: a single-file WAL-mode database with a
// prepared-statement upsert path, offered as an opt-in alternative to
// FileStore for deployments that want one file instead of a directory tree
// of artifacts.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (creating if necessary) a SQLite-backed Store at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}

	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set wal mode: %w", err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS artifacts (
	name   TEXT NOT NULL,
	suffix TEXT NOT NULL,
	data   BLOB NOT NULL,
	PRIMARY KEY (name, suffix)
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Read(name, suffix string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM artifacts WHERE name = ? AND suffix = ?`, name, suffix).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s%s: %w", name, suffix, err)
	}
	return data, nil
}

func (s *SQLiteStore) Write(name, suffix string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO artifacts (name, suffix, data) VALUES (?, ?, ?)
		 ON CONFLICT(name, suffix) DO UPDATE SET data = excluded.data`,
		name, suffix, data,
	)
	if err != nil {
		return fmt.Errorf("store: write %s%s: %w", name, suffix, err)
	}
	return nil
}

func (s *SQLiteStore) Exists(name, suffix string) bool {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM artifacts WHERE name = ? AND suffix = ?`, name, suffix).Scan(&one)
	return err == nil
}

func (s *SQLiteStore) Remove(name, suffix string) error {
	_, err := s.db.Exec(`DELETE FROM artifacts WHERE name = ? AND suffix = ?`, name, suffix)
	if err != nil {
		return fmt.Errorf("store: remove %s%s: %w", name, suffix, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
