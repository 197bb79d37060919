// Package prefs is a small key-value preference store backed by a single
// SQL table. Values are opaque blobs; writes are atomic at key granularity.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get returns the value stored under key. The second return is false when
// the key has never been written.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	// $N placeholders are understood by both SQLite and Postgres.
	query := `SELECT value FROM prefs WHERE key = $1`

	var value []byte
	if err := s.db.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("reading pref %q: %w", key, err)
	}

	return value, true, nil
}

// Put writes value under key, unconditionally overwriting any prior value.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO prefs (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("writing pref %q: %w", key, err)
	}

	return nil
}
