package cache

import (
	"context"
	"errors"

	"github.com/justestif/go-song-board/internal/db"
)

// PostgresStore persists entries in the cache_entries table, so every
// process sharing the database shares the cache.
type PostgresStore struct {
	entries *db.CacheEntryRepository
}

// NewPostgresStore creates a Store backed by the database.
func NewPostgresStore(database *db.DB) *PostgresStore {
	return &PostgresStore{entries: database.CacheEntries()}
}

// Get returns the stored value for key.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := s.entries.Get(ctx, key)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return entry.Value, nil
}

// Set upserts value under key.
func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	return s.entries.Upsert(ctx, key, value)
}

// Ensure both backends implement Store.
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
