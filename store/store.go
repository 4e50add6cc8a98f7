// Package store implements the ObjectStore abstraction for the corpus
// profile: a default local-file backend with fsync+rename atomicity, and
// a Postgres-backed alternative. A crash mid-write leaves the previous
// profile intact.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ObjectStore persists a single named blob (the corpus profile JSON) with
// atomic writes. A process crash mid-write must leave the previous value
// intact.
type ObjectStore interface {
	Load(ctx context.Context) ([]byte, error) // nil, nil if absent
	Save(ctx context.Context, data []byte) error
}

// FileStore persists to a local file via a write-temp/fsync/rename
// sequence, so a crash between the temp write and the rename never
// corrupts the previous profile.
type FileStore struct {
	path string
}

// NewFileStore returns an ObjectStore backed by the file at path. The
// parent directory is created if missing.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create parent dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", s.path, err)
	}
	return data, nil
}

func (s *FileStore) Save(ctx context.Context, data []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("store: write temp: %w", err)
	}

	f, err := os.Open(tmp)
	if err != nil {
		return fmt.Errorf("store: open temp for sync: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("store: sync temp: %w", err)
	}
	_ = f.Close()

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("store: rename temp into place: %w", err)
	}
	return nil
}

// PostgresStore persists the corpus profile as a single row in Postgres,
// for deployments that already run the engine against a shared database
// rather than local disk.
type PostgresStore struct {
	pool *pgxpool.Pool
	key  string
}

// NewPostgresStore opens a pool against dsn, ensures the backing table
// exists, and returns a store scoped to key (one profile per key).
func NewPostgresStore(ctx context.Context, dsn, key string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	const schema = `
		CREATE TABLE IF NOT EXISTS corpus_profile (
			key   TEXT PRIMARY KEY,
			data  JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &PostgresStore{pool: pool, key: key}, nil
}

func (s *PostgresStore) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM corpus_profile WHERE key = $1`, s.key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: load %s: %w", s.key, err)
	}
	return data, nil
}

func (s *PostgresStore) Save(ctx context.Context, data []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO corpus_profile (key, data, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		s.key, data)
	if err != nil {
		return fmt.Errorf("store: save: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() { s.pool.Close() }
