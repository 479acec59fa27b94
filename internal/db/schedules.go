package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ScheduleRepository handles play schedule database operations.
type ScheduleRepository struct {
	pool *pgxpool.Pool
}

// ScheduledSongs returns the subset of songIDs with at least one published
// (non-draft) schedule row. Draft rows never count.
func (r *ScheduleRepository) ScheduledSongs(ctx context.Context, songIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	if len(songIDs) == 0 {
		return make(map[uuid.UUID]bool), nil
	}

	query := `
		SELECT DISTINCT song_id
		FROM schedules
		WHERE song_id = ANY($1) AND is_draft = false
	`
	rows, err := r.pool.Query(ctx, query, songIDs)
	if err != nil {
		return nil, fmt.Errorf("querying schedules: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning schedule: %w", err)
		}
		result[id] = true
	}
	return result, rows.Err()
}
