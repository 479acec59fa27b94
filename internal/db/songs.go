package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SongFilter narrows the song listing. Zero values do not filter.
type SongFilter struct {
	Search   string // substring of title or artist
	Semester string
	Grade    string // requester grade
	Played   *bool
}

// SongOrder orders the song listing by an API sort field.
// Fields without a stored column, such as "votes", fall back to newest first.
type SongOrder struct {
	Field string
	Desc  bool
}

// orderColumns maps API sort fields to stored columns.
var orderColumns = map[string]string{
	"createdAt": "s.created_at",
	"title":     "s.title",
	"artist":    "s.artist",
	"playedAt":  "s.played_at",
}

const songFrom = `
		FROM songs s
		LEFT JOIN users u ON u.id = s.requester_id
`

// SongRepository handles song database operations.
type SongRepository struct {
	pool *pgxpool.Pool
}

// Count returns the number of songs matching the filter.
func (r *SongRepository) Count(ctx context.Context, filter SongFilter) (int, error) {
	where, args := filter.where()
	query := `SELECT COUNT(*)` + songFrom + where

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting songs: %w", err)
	}
	return count, nil
}

// ListPage retrieves one page of songs with their requesters.
func (r *SongRepository) ListPage(ctx context.Context, filter SongFilter, order SongOrder, limit, offset int) ([]SongRow, error) {
	where, args := filter.where()
	query := `
		SELECT s.id, s.title, s.artist, s.requester_id, s.played, s.played_at, s.semester,
			s.preferred_play_time_id, s.cover, s.platform, s.track_id, s.play_url,
			s.created_at, s.updated_at, u.name, u.grade, u.class` +
		songFrom + where + order.clause() +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying songs: %w", err)
	}
	defer rows.Close()

	var songs []SongRow
	for rows.Next() {
		var row SongRow
		if err := rows.Scan(
			&row.ID,
			&row.Title,
			&row.Artist,
			&row.RequesterID,
			&row.Played,
			&row.PlayedAt,
			&row.Semester,
			&row.PreferredPlayTimeID,
			&row.Cover,
			&row.Platform,
			&row.TrackID,
			&row.PlayURL,
			&row.CreatedAt,
			&row.UpdatedAt,
			&row.Requester.Name,
			&row.Requester.Grade,
			&row.Requester.Class,
		); err != nil {
			return nil, fmt.Errorf("scanning song: %w", err)
		}
		row.Requester.ID = row.RequesterID
		songs = append(songs, row)
	}
	return songs, rows.Err()
}

// where builds the conjunctive WHERE clause and its positional arguments.
func (f SongFilter) where() (string, []any) {
	var conds []string
	var args []any

	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(s.title ILIKE $%d OR s.artist ILIKE $%d)", n, n))
	}
	if f.Semester != "" {
		args = append(args, f.Semester)
		conds = append(conds, fmt.Sprintf("s.semester = $%d", len(args)))
	}
	if f.Grade != "" {
		args = append(args, f.Grade)
		conds = append(conds, fmt.Sprintf("u.grade = $%d", len(args)))
	}
	if f.Played != nil {
		args = append(args, *f.Played)
		conds = append(conds, fmt.Sprintf("s.played = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// clause returns the ORDER BY clause. The song id breaks ties so pages are stable.
func (o SongOrder) clause() string {
	column, ok := orderColumns[o.Field]
	if !ok {
		return " ORDER BY s.created_at DESC, s.id"
	}
	dir := "ASC"
	if o.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, s.id", column, dir)
}

// escapeLike escapes LIKE wildcards so the search term matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
