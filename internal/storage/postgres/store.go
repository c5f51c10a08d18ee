// Package postgres implements storage.Store on PostgreSQL, keeping each
// collection document in a jsonb column of a single collections table.
package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shoplite/storefront/db"
	"github.com/shoplite/storefront/internal/storage"
)

const (
	loadDocSQL = `SELECT doc FROM collections WHERE key = $1`

	saveDocSQL = `INSERT INTO collections (key, doc, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`

	deleteDocSQL = `DELETE FROM collections WHERE key = $1`
)

var _ storage.Store = (*Store)(nil)

// Store persists collection documents in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewPool creates a pgx connection pool for the given URL.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "create connection pool")
	}
	return pool, nil
}

// RunMigrations executes the embedded DDL schema against the pool.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, db.Schema); err != nil {
		return errors.Wrap(err, "run migrations")
	}
	return nil
}

// NewStore returns a Store that uses the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Load returns the document stored under key, or storage.ErrNotFound.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, loadDocSQL, key).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, errors.Wrapf(err, "load %q", key)
	}
	return doc, nil
}

// Save replaces the document stored under key.
func (s *Store) Save(ctx context.Context, key string, doc []byte) error {
	if _, err := s.pool.Exec(ctx, saveDocSQL, key, doc); err != nil {
		return errors.Wrapf(err, "save %q", key)
	}
	return nil
}

// Delete removes the document stored under key. Absent keys are a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, deleteDocSQL, key); err != nil {
		return errors.Wrapf(err, "delete %q", key)
	}
	return nil
}
