package songs

import (
	"time"

	"github.com/google/uuid"
)

const playedAtLayout = "2006-01-02 15:04"

// Response is a successful listing response.
type Response struct {
	Success bool     `json:"success"`
	Data    ListData `json:"data"`
}

// ListData holds one page of songs.
type ListData struct {
	Songs      []SongView `json:"songs"`
	Pagination Pagination `json:"pagination"`
}

// Pagination describes the page within the full match set.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func newPagination(p Params, total int) Pagination {
	return Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: (total + p.Limit - 1) / p.Limit,
	}
}

// Failure is a failed response.
type Failure struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// NewFailure builds the failure body for err.
func NewFailure(err error) Failure {
	se := AsStatusError(err)
	return Failure{StatusCode: se.Status, Message: se.Message}
}

// SongView is a song as returned by a read surface. Fields only the
// internal surface exposes are omitted from public output.
type SongView struct {
	ID                uuid.UUID     `json:"id"`
	Title             string        `json:"title"`
	Artist            string        `json:"artist"`
	RequesterID       string        `json:"requesterId,omitempty"`
	Requester         string        `json:"requester"`
	VoteCount         int           `json:"voteCount"`
	Played            bool          `json:"played"`
	PlayedAt          *time.Time    `json:"playedAt"`
	PlayedAtFormatted string        `json:"playedAtFormatted,omitempty"`
	Scheduled         bool          `json:"scheduled"`
	Semester          *string       `json:"semester"`
	Cover             *string       `json:"cover"`
	Platform          *string       `json:"platform"`
	TrackID           *string       `json:"trackId"`
	PlayURL           *string       `json:"playUrl"`
	PreferredPlayTime *PlayTimeView `json:"preferredPlayTime,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         *time.Time    `json:"updatedAt,omitempty"`
}

// PlayTimeView is a preferred play-time window as returned by a read surface.
type PlayTimeView struct {
	ID        *int    `json:"id,omitempty"`
	Name      string  `json:"name"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Enabled   *bool   `json:"enabled,omitempty"`
}

func internalView(r Record, loc *time.Location) SongView {
	v := baseView(r, loc)
	v.RequesterID = r.RequesterID
	updated := r.UpdatedAt
	v.UpdatedAt = &updated
	if pt := r.PreferredPlayTime; pt != nil {
		id, enabled := pt.ID, pt.Enabled
		v.PreferredPlayTime.ID = &id
		v.PreferredPlayTime.Enabled = &enabled
	}
	return v
}

func publicView(r Record, loc *time.Location) SongView {
	return baseView(r, loc)
}

func baseView(r Record, loc *time.Location) SongView {
	v := SongView{
		ID:        r.ID,
		Title:     r.Title,
		Artist:    r.Artist,
		Requester: r.Requester,
		VoteCount: r.VoteCount,
		Played:    r.Played,
		PlayedAt:  r.PlayedAt,
		Scheduled: r.Scheduled,
		Semester:  r.Semester,
		Cover:     r.Cover,
		Platform:  r.Platform,
		TrackID:   r.TrackID,
		PlayURL:   r.PlayURL,
		CreatedAt: r.CreatedAt,
	}
	if r.PlayedAt != nil {
		v.PlayedAtFormatted = r.PlayedAt.In(loc).Format(playedAtLayout)
	}
	if pt := r.PreferredPlayTime; pt != nil {
		v.PreferredPlayTime = &PlayTimeView{
			Name:      pt.Name,
			StartTime: pt.StartTime,
			EndTime:   pt.EndTime,
		}
	}
	return v
}
