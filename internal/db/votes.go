package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VoteRepository handles vote database operations.
type VoteRepository struct {
	pool *pgxpool.Pool
}

// CountForSongs returns vote counts keyed by song ID.
// Songs without votes are absent from the map.
func (r *VoteRepository) CountForSongs(ctx context.Context, songIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	if len(songIDs) == 0 {
		return make(map[uuid.UUID]int), nil
	}

	query := `
		SELECT song_id, COUNT(*)
		FROM votes
		WHERE song_id = ANY($1)
		GROUP BY song_id
	`
	rows, err := r.pool.Query(ctx, query, songIDs)
	if err != nil {
		return nil, fmt.Errorf("querying vote counts: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID]int, len(songIDs))
	for rows.Next() {
		var id uuid.UUID
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("scanning vote count: %w", err)
		}
		result[id] = count
	}
	return result, rows.Err()
}
