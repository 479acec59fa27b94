// Package db provides PostgreSQL database access for the song board.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Common errors.
var (
	ErrNotFound = errors.New("not found")
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the database connection pool.
func (db *DB) Close() {
	db.pool.Close()
}

// Ping runs a trivial liveness query.
func (db *DB) Ping(ctx context.Context) error {
	var one int
	if err := db.pool.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("liveness query: %w", err)
	}
	return nil
}

// Songs returns a SongRepository.
func (db *DB) Songs() *SongRepository {
	return &SongRepository{pool: db.pool}
}

// Votes returns a VoteRepository.
func (db *DB) Votes() *VoteRepository {
	return &VoteRepository{pool: db.pool}
}

// Schedules returns a ScheduleRepository.
func (db *DB) Schedules() *ScheduleRepository {
	return &ScheduleRepository{pool: db.pool}
}

// PlayTimes returns a PlayTimeRepository.
func (db *DB) PlayTimes() *PlayTimeRepository {
	return &PlayTimeRepository{pool: db.pool}
}

// Users returns a UserRepository.
func (db *DB) Users() *UserRepository {
	return &UserRepository{pool: db.pool}
}

// CacheEntries returns a CacheEntryRepository.
func (db *DB) CacheEntries() *CacheEntryRepository {
	return &CacheEntryRepository{pool: db.pool}
}
