package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PlayTimeRepository handles play-time window database operations.
type PlayTimeRepository struct {
	pool *pgxpool.Pool
}

// All retrieves every play-time window. The table is small reference data.
func (r *PlayTimeRepository) All(ctx context.Context) ([]PlayTimeWindow, error) {
	query := `
		SELECT id, name, start_time, end_time, enabled
		FROM play_times
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying play times: %w", err)
	}
	defer rows.Close()

	var windows []PlayTimeWindow
	for rows.Next() {
		var w PlayTimeWindow
		if err := rows.Scan(
			&w.ID,
			&w.Name,
			&w.StartTime,
			&w.EndTime,
			&w.Enabled,
		); err != nil {
			return nil, fmt.Errorf("scanning play time: %w", err)
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}
