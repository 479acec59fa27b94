// Package songs serves the paginated, filtered and sorted song listing to the
// internal and public read surfaces over one shared result cache.
package songs

import (
	"net/url"
	"strconv"
	"strings"
)

// SortField names a listing sort key.
type SortField string

// Supported sort fields.
const (
	SortCreatedAt SortField = "createdAt"
	SortTitle     SortField = "title"
	SortArtist    SortField = "artist"
	SortPlayedAt  SortField = "playedAt"
	SortVotes     SortField = "votes"
)

// SortOrder is asc or desc.
type SortOrder string

// Supported sort orders.
const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Paging bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params are the listing query parameters after validation.
type Params struct {
	Search    string
	Semester  string
	Grade     string
	Played    *bool // nil means unset
	Scheduled *bool // nil means unset; applied after paging
	Page      int
	Limit     int
	SortField SortField
	SortOrder SortOrder
}

// Defaults are the per-surface fallbacks for omitted or malformed parameters.
type Defaults struct {
	Limit     int
	SortField SortField
	SortOrder SortOrder
}

// InternalDefaults are the internal surface's defaults.
func InternalDefaults() Defaults {
	return Defaults{Limit: DefaultLimit, SortField: SortCreatedAt, SortOrder: Desc}
}

// PublicDefaults are the public surface's defaults with the given limit.
func PublicDefaults(limit int) Defaults {
	d := InternalDefaults()
	if limit > 0 {
		d.Limit = min(limit, MaxLimit)
	}
	return d
}

// ParseParams reads listing parameters from a query string. Parsing never
// fails: malformed or out-of-range values fall back to defaults.
func ParseParams(q url.Values, d Defaults) Params {
	p := Params{
		Search:    strings.TrimSpace(q.Get("search")),
		Semester:  strings.TrimSpace(q.Get("semester")),
		Grade:     strings.TrimSpace(q.Get("grade")),
		Played:    parseTriState(q.Get("played")),
		Scheduled: parseTriState(q.Get("scheduled")),
		Page:      DefaultPage,
		Limit:     d.Limit,
		SortField: SortField(q.Get("sortBy")),
		SortOrder: SortOrder(strings.ToLower(q.Get("sortOrder"))),
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page >= 1 {
		p.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit >= 1 {
		p.Limit = limit
	}
	return p.Normalize(d)
}

// Normalize replaces out-of-range paging and unknown sort values with d.
func (p Params) Normalize(d Defaults) Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = d.Limit
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	p.Limit = min(p.Limit, MaxLimit)

	switch p.SortField {
	case SortCreatedAt, SortTitle, SortArtist, SortPlayedAt, SortVotes:
	default:
		p.SortField = d.SortField
	}
	switch p.SortOrder {
	case Asc, Desc:
	default:
		p.SortOrder = d.SortOrder
	}
	return p
}

// parseTriState maps "true"/"false" to a value and anything else to unset.
func parseTriState(s string) *bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}
