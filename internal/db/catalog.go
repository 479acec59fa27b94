package db

import (
	"context"

	"github.com/google/uuid"
)

// Catalog groups the read operations behind the song listing.
type Catalog struct {
	db *DB
}

// Catalog returns the song listing read operations.
func (db *DB) Catalog() *Catalog {
	return &Catalog{db: db}
}

// CountSongs counts songs matching filter.
func (c *Catalog) CountSongs(ctx context.Context, filter SongFilter) (int, error) {
	return c.db.Songs().Count(ctx, filter)
}

// ListSongs fetches one ordered page of songs.
func (c *Catalog) ListSongs(ctx context.Context, filter SongFilter, order SongOrder, limit, offset int) ([]SongRow, error) {
	return c.db.Songs().ListPage(ctx, filter, order, limit, offset)
}

// VoteCounts counts votes for the given songs.
func (c *Catalog) VoteCounts(ctx context.Context, songIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	return c.db.Votes().CountForSongs(ctx, songIDs)
}

// ScheduledSongs reports which of the given songs have a published schedule.
func (c *Catalog) ScheduledSongs(ctx context.Context, songIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return c.db.Schedules().ScheduledSongs(ctx, songIDs)
}

// PlayTimes loads all play-time windows.
func (c *Catalog) PlayTimes(ctx context.Context) ([]PlayTimeWindow, error) {
	return c.db.PlayTimes().All(ctx)
}

// Requesters loads all requesters.
func (c *Catalog) Requesters(ctx context.Context) ([]Requester, error) {
	return c.db.Users().All(ctx)
}

// Ping runs the liveness query.
func (c *Catalog) Ping(ctx context.Context) error {
	return c.db.Ping(ctx)
}
