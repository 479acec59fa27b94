package songs

import (
	"context"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/justestif/go-song-board/internal/db"
)

// fakeSchedule is a schedule row in the fake store.
type fakeSchedule struct {
	songID  uuid.UUID
	isDraft bool
}

// fakeCatalog is an in-memory Catalog that filters, orders and pages like
// the SQL repositories.
type fakeCatalog struct {
	songs      []db.SongRow
	votes      map[uuid.UUID]int
	schedules  []fakeSchedule
	playTimes  []db.PlayTimeWindow
	requesters []db.Requester

	// listErrs are returned by successive ListSongs calls before succeeding.
	mu       sync.Mutex
	listErrs []error

	listCalls atomic.Int32
	voteCalls atomic.Int32
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{votes: make(map[uuid.UUID]int)}
}

func (f *fakeCatalog) addRequester(id, name, grade, class string) db.Requester {
	r := db.Requester{ID: id, Name: strPtr(name), Grade: strPtr(grade), Class: strPtr(class)}
	f.requesters = append(f.requesters, r)
	return r
}

func (f *fakeCatalog) addSong(title string, requester db.Requester, createdAt time.Time, opts ...func(*db.SongRow)) db.SongRow {
	row := db.SongRow{
		Song: db.Song{
			ID:          uuid.New(),
			Title:       title,
			Artist:      title + " Artist",
			RequesterID: requester.ID,
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
		},
		Requester: requester,
	}
	for _, opt := range opts {
		opt(&row)
	}
	f.songs = append(f.songs, row)
	return row
}

func (f *fakeCatalog) matching(filter db.SongFilter) []db.SongRow {
	var out []db.SongRow
	for _, s := range f.songs {
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(s.Title), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(s.Artist), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Semester != "" && deref(s.Semester) != filter.Semester {
			continue
		}
		if filter.Grade != "" && deref(s.Requester.Grade) != filter.Grade {
			continue
		}
		if filter.Played != nil && s.Played != *filter.Played {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (f *fakeCatalog) CountSongs(_ context.Context, filter db.SongFilter) (int, error) {
	return len(f.matching(filter)), nil
}

func (f *fakeCatalog) ListSongs(_ context.Context, filter db.SongFilter, order db.SongOrder, limit, offset int) ([]db.SongRow, error) {
	f.listCalls.Add(1)
	f.mu.Lock()
	if len(f.listErrs) > 0 {
		err := f.listErrs[0]
		f.listErrs = f.listErrs[1:]
		f.mu.Unlock()
		return nil, err
	}
	f.mu.Unlock()

	rows := f.matching(filter)
	slices.SortStableFunc(rows, func(a, b db.SongRow) int {
		var c int
		switch order.Field {
		case "title":
			c = strings.Compare(a.Title, b.Title)
		case "artist":
			c = strings.Compare(a.Artist, b.Artist)
		case "createdAt":
			c = a.CreatedAt.Compare(b.CreatedAt)
		default:
			return b.CreatedAt.Compare(a.CreatedAt)
		}
		if order.Desc {
			return -c
		}
		return c
	})
	if offset >= len(rows) {
		return nil, nil
	}
	return rows[offset:min(offset+limit, len(rows))], nil
}

func (f *fakeCatalog) VoteCounts(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	f.voteCalls.Add(1)
	out := make(map[uuid.UUID]int)
	for _, id := range ids {
		if n, ok := f.votes[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

func (f *fakeCatalog) ScheduledSongs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool)
	for _, s := range f.schedules {
		if !s.isDraft && slices.Contains(ids, s.songID) {
			out[s.songID] = true
		}
	}
	return out, nil
}

func (f *fakeCatalog) PlayTimes(context.Context) ([]db.PlayTimeWindow, error) {
	return f.playTimes, nil
}

func (f *fakeCatalog) Requesters(context.Context) ([]db.Requester, error) {
	return f.requesters, nil
}

func (f *fakeCatalog) Ping(context.Context) error {
	return nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func inSemester(semester string) func(*db.SongRow) {
	return func(r *db.SongRow) { r.Semester = strPtr(semester) }
}

var _ Catalog = (*fakeCatalog)(nil)
