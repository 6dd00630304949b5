package storage

// sqlite.go: default document store.
//
// Each document is one row keyed by name and holding the raw JSON.
// An in-memory copy of the last written payload skips writes that would not
// change anything, which is the common case for the wallets document during
// a quiet poll cycle.

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alejandrodnm/soloqbet/internal/ports"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS documents (
    name       TEXT PRIMARY KEY,
    data       BLOB     NOT NULL,
    updated_at DATETIME NOT NULL
);
`

// SQLiteStore implements ports.DocumentStore on SQLite (pure Go, no cgo).
type SQLiteStore struct {
	db    *sql.DB
	cache map[string][]byte // name → last payload written or read
	mu    sync.Mutex
}

// NewSQLiteStore opens (or creates) the database at path and applies the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStore: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStore: apply schema: %w", err)
	}

	return &SQLiteStore{
		db:    db,
		cache: make(map[string][]byte),
	}, nil
}

// Get returns the stored document or ports.ErrDocumentNotFound.
func (s *SQLiteStore) Get(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM documents WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage.Get: query %q: %w", name, err)
	}

	s.mu.Lock()
	s.cache[name] = bytes.Clone(data)
	s.mu.Unlock()
	return data, nil
}

// Put upserts the document unless it is identical to the cached copy.
func (s *SQLiteStore) Put(ctx context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.cache[name]; ok && bytes.Equal(prev, data) {
		return nil
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			data       = excluded.data,
			updated_at = excluded.updated_at
	`, name, data, time.Now().UTC()); err != nil {
		delete(s.cache, name)
		return fmt.Errorf("storage.Put: upsert %q: %w", name, err)
	}

	s.cache[name] = bytes.Clone(data)
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
