package songs

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/justestif/go-song-board/internal/db"
)

// Record is one composed listing entry as stored in the cache.
type Record struct {
	ID                uuid.UUID  `json:"id"`
	Title             string     `json:"title"`
	Artist            string     `json:"artist"`
	RequesterID       string     `json:"requesterId"`
	Requester         string     `json:"requester"`
	VoteCount         int        `json:"voteCount"`
	Played            bool       `json:"played"`
	PlayedAt          *time.Time `json:"playedAt"`
	Scheduled         bool       `json:"scheduled"`
	Semester          *string    `json:"semester"`
	Cover             *string    `json:"cover"`
	Platform          *string    `json:"platform"`
	TrackID           *string    `json:"trackId"`
	PlayURL           *string    `json:"playUrl"`
	PreferredPlayTime *PlayTime  `json:"preferredPlayTime,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// PlayTime is a resolved preferred play-time window.
type PlayTime struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Enabled   bool    `json:"enabled"`
}

// BaseResult is the unit cached per key: one store page of composed records,
// sorted, before the scheduled filter, with the store-level match count.
type BaseResult struct {
	Songs []Record `json:"songs"`
	Total int      `json:"total"`
}

// Engine joins a page of songs with votes, schedules, play times and
// disambiguated requester names.
type Engine struct {
	catalog Catalog
}

// NewEngine creates an Engine reading from catalog.
func NewEngine(catalog Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Aggregate runs the listing pipeline for p up to and including the in-page
// vote sort. The scheduled filter is not applied here.
func (e *Engine) Aggregate(ctx context.Context, p Params) (BaseResult, error) {
	filter := db.SongFilter{
		Search:   p.Search,
		Semester: p.Semester,
		Grade:    p.Grade,
		Played:   p.Played,
	}
	order := db.SongOrder{Field: string(p.SortField), Desc: p.SortOrder == Desc}

	total, err := e.catalog.CountSongs(ctx, filter)
	if err != nil {
		return BaseResult{}, fmt.Errorf("counting songs: %w", err)
	}
	rows, err := e.catalog.ListSongs(ctx, filter, order, p.Limit, (p.Page-1)*p.Limit)
	if err != nil {
		return BaseResult{}, fmt.Errorf("listing songs: %w", err)
	}
	if len(rows) == 0 {
		return BaseResult{Songs: []Record{}, Total: total}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	var (
		votes      map[uuid.UUID]int
		scheduled  map[uuid.UUID]bool
		playTimes  []db.PlayTimeWindow
		requesters []db.Requester
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if votes, err = e.catalog.VoteCounts(gctx, ids); err != nil {
			return fmt.Errorf("counting votes: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if scheduled, err = e.catalog.ScheduledSongs(gctx, ids); err != nil {
			return fmt.Errorf("loading schedules: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if playTimes, err = e.catalog.PlayTimes(gctx); err != nil {
			return fmt.Errorf("loading play times: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if requesters, err = e.catalog.Requesters(gctx); err != nil {
			return fmt.Errorf("loading requesters: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return BaseResult{}, err
	}

	playTimeByID := make(map[int]db.PlayTimeWindow, len(playTimes))
	for _, pt := range playTimes {
		playTimeByID[pt.ID] = pt
	}
	names := newNameIndex(requesters)

	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = compose(row, votes[row.ID], scheduled[row.ID], names, playTimeByID)
	}

	if p.SortField == SortVotes {
		sortByVotes(records, p.SortOrder)
	}
	return BaseResult{Songs: records, Total: total}, nil
}

func compose(row db.SongRow, votes int, scheduled bool, names nameIndex, playTimes map[int]db.PlayTimeWindow) Record {
	r := Record{
		ID:          row.ID,
		Title:       row.Title,
		Artist:      row.Artist,
		RequesterID: row.RequesterID,
		Requester:   names.displayName(row.Requester),
		VoteCount:   votes,
		Played:      row.Played,
		PlayedAt:    row.PlayedAt,
		Scheduled:   scheduled,
		Semester:    row.Semester,
		Cover:       row.Cover,
		Platform:    row.Platform,
		TrackID:     row.TrackID,
		PlayURL:     row.PlayURL,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.PreferredPlayTimeID != nil {
		if pt, ok := playTimes[*row.PreferredPlayTimeID]; ok {
			r.PreferredPlayTime = &PlayTime{
				ID:        pt.ID,
				Name:      pt.Name,
				StartTime: pt.StartTime,
				EndTime:   pt.EndTime,
				Enabled:   pt.Enabled,
			}
		}
	}
	return r
}

// sortByVotes orders records by vote count. Equal counts keep the earlier
// request first whatever the order.
func sortByVotes(records []Record, order SortOrder) {
	slices.SortStableFunc(records, func(a, b Record) int {
		if a.VoteCount != b.VoteCount {
			if order == Asc {
				return a.VoteCount - b.VoteCount
			}
			return b.VoteCount - a.VoteCount
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}

// filterScheduled keeps records whose scheduled flag equals want.
// A nil want keeps everything.
func filterScheduled(records []Record, want *bool) []Record {
	if want == nil {
		return records
	}
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Scheduled == *want {
			kept = append(kept, r)
		}
	}
	return kept
}
