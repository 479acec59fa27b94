package songs

import (
	"context"

	"github.com/google/uuid"

	"github.com/justestif/go-song-board/internal/db"
	"github.com/justestif/go-song-board/internal/resilience"
)

// Catalog is the relational store behind the listing.
type Catalog interface {
	CountSongs(ctx context.Context, filter db.SongFilter) (int, error)
	ListSongs(ctx context.Context, filter db.SongFilter, order db.SongOrder, limit, offset int) ([]db.SongRow, error)
	VoteCounts(ctx context.Context, songIDs []uuid.UUID) (map[uuid.UUID]int, error)
	ScheduledSongs(ctx context.Context, songIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	PlayTimes(ctx context.Context) ([]db.PlayTimeWindow, error)
	Requesters(ctx context.Context) ([]db.Requester, error)
	Ping(ctx context.Context) error
}

// WithRetry decorates c so every store call goes through r.
func WithRetry(c Catalog, r *resilience.Retrier) Catalog {
	return &retryingCatalog{next: c, retrier: r}
}

type retryingCatalog struct {
	next    Catalog
	retrier *resilience.Retrier
}

func (c *retryingCatalog) CountSongs(ctx context.Context, filter db.SongFilter) (int, error) {
	return resilience.Run(ctx, c.retrier, "count songs", func(ctx context.Context) (int, error) {
		return c.next.CountSongs(ctx, filter)
	})
}

func (c *retryingCatalog) ListSongs(ctx context.Context, filter db.SongFilter, order db.SongOrder, limit, offset int) ([]db.SongRow, error) {
	return resilience.Run(ctx, c.retrier, "list songs", func(ctx context.Context) ([]db.SongRow, error) {
		return c.next.ListSongs(ctx, filter, order, limit, offset)
	})
}

func (c *retryingCatalog) VoteCounts(ctx context.Context, songIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	return resilience.Run(ctx, c.retrier, "count votes", func(ctx context.Context) (map[uuid.UUID]int, error) {
		return c.next.VoteCounts(ctx, songIDs)
	})
}

func (c *retryingCatalog) ScheduledSongs(ctx context.Context, songIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return resilience.Run(ctx, c.retrier, "load schedules", func(ctx context.Context) (map[uuid.UUID]bool, error) {
		return c.next.ScheduledSongs(ctx, songIDs)
	})
}

func (c *retryingCatalog) PlayTimes(ctx context.Context) ([]db.PlayTimeWindow, error) {
	return resilience.Run(ctx, c.retrier, "load play times", c.next.PlayTimes)
}

func (c *retryingCatalog) Requesters(ctx context.Context) ([]db.Requester, error) {
	return resilience.Run(ctx, c.retrier, "load requesters", c.next.Requesters)
}

func (c *retryingCatalog) Ping(ctx context.Context) error {
	return c.retrier.Do(ctx, "ping", c.next.Ping)
}

var (
	_ Catalog = (*db.Catalog)(nil)
	_ Catalog = (*retryingCatalog)(nil)
)
