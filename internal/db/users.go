package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles read-only requester lookups.
type UserRepository struct {
	pool *pgxpool.Pool
}

// All retrieves every requester for display-name disambiguation.
func (r *UserRepository) All(ctx context.Context) ([]Requester, error) {
	query := `SELECT id, name, grade, class FROM users`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var requesters []Requester
	for rows.Next() {
		var req Requester
		if err := rows.Scan(
			&req.ID,
			&req.Name,
			&req.Grade,
			&req.Class,
		); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		requesters = append(requesters, req)
	}
	return requesters, rows.Err()
}
