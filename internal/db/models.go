package db

import (
	"time"

	"github.com/google/uuid"
)

// Song represents a requested song in the catalog.
type Song struct {
	ID                  uuid.UUID
	Title               string
	Artist              string
	RequesterID         string
	Played              bool
	PlayedAt            *time.Time // nullable, not enforced to match Played
	Semester            *string    // nullable
	PreferredPlayTimeID *int       // nullable
	Cover               *string    // nullable
	Platform            *string    // nullable
	TrackID             *string    // nullable
	PlayURL             *string    // nullable
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Requester is the read-side view of the user who requested a song.
type Requester struct {
	ID    string
	Name  *string // nullable
	Grade *string // nullable
	Class *string // nullable
}

// SongRow is a song joined with its requester.
type SongRow struct {
	Song
	Requester Requester
}

// PlayTimeWindow is a named time slot a requester may prefer.
type PlayTimeWindow struct {
	ID        int
	Name      string
	StartTime *string // nullable, "HH:MM"
	EndTime   *string // nullable, "HH:MM"
	Enabled   bool
}

// CacheEntry is a persisted cache value.
type CacheEntry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}
