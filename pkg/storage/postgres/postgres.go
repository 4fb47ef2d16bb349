// Package postgres implements storage.KV on a PostgreSQL table.
package postgres

import (
	"context"
	"database/sql"

	"storefront/pkg/storage"
)

// Schema creates the backing table.
const Schema = "CREATE TABLE IF NOT EXISTS storefront_kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)"

// Store persists key-value pairs in PostgreSQL.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL store. The caller must ensure the table exists,
// see EnsureSchema.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the storefront_kv table if it is missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, Schema)
	return err
}

// Get retrieves the value for key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM storefront_kv WHERE key=$1", key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", storage.ErrNotFound
	}
	return v, err
}

// Set upserts value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO storefront_kv (key,value) VALUES ($1,$2) ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value",
		key, value)
	return err
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM storefront_kv WHERE key=$1", key)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
