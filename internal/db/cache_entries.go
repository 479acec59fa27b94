package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CacheEntryRepository persists opaque cache values.
// Entries are never expired here; an external writer invalidates them.
type CacheEntryRepository struct {
	pool *pgxpool.Pool
}

// Get retrieves the value stored under key.
func (r *CacheEntryRepository) Get(ctx context.Context, key string) (*CacheEntry, error) {
	query := `
		SELECT key, value, updated_at
		FROM cache_entries
		WHERE key = $1
	`
	var entry CacheEntry
	err := r.pool.QueryRow(ctx, query, key).Scan(
		&entry.Key,
		&entry.Value,
		&entry.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying cache entry: %w", err)
	}
	return &entry, nil
}

// Upsert stores value under key. The last write wins.
func (r *CacheEntryRepository) Upsert(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO cache_entries (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := r.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("upserting cache entry: %w", err)
	}
	return nil
}
