package songs

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseParams_Defaults(t *testing.T) {
	p := ParseParams(url.Values{}, InternalDefaults())

	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, SortCreatedAt, p.SortField)
	assert.Equal(t, Desc, p.SortOrder)
	assert.Nil(t, p.Played)
	assert.Nil(t, p.Scheduled)
	assert.Empty(t, p.Search)
}

func TestParseParams_Paging(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"valid", "3", "10", 3, 10},
		{"limit clamped", "1", "500", 1, MaxLimit},
		{"page zero", "0", "10", 1, 10},
		{"negative page", "-4", "10", 1, 10},
		{"malformed page", "abc", "10", 1, 10},
		{"zero limit", "2", "0", 2, DefaultLimit},
		{"malformed limit", "2", "ten", 2, DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := url.Values{"page": {tt.page}, "limit": {tt.limit}}
			p := ParseParams(q, InternalDefaults())
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestParseParams_Sort(t *testing.T) {
	p := ParseParams(url.Values{"sortBy": {"votes"}, "sortOrder": {"ASC"}}, InternalDefaults())
	assert.Equal(t, SortVotes, p.SortField)
	assert.Equal(t, Asc, p.SortOrder)

	p = ParseParams(url.Values{"sortBy": {"popularity"}, "sortOrder": {"sideways"}}, InternalDefaults())
	assert.Equal(t, SortCreatedAt, p.SortField)
	assert.Equal(t, Desc, p.SortOrder)
}

func TestParseParams_Filters(t *testing.T) {
	q := url.Values{
		"search":    {"  sun  "},
		"semester":  {"2024S1"},
		"grade":     {"G3"},
		"played":    {"true"},
		"scheduled": {"False"},
	}
	p := ParseParams(q, InternalDefaults())

	assert.Equal(t, "sun", p.Search)
	assert.Equal(t, "2024S1", p.Semester)
	assert.Equal(t, "G3", p.Grade)
	if assert.NotNil(t, p.Played) {
		assert.True(t, *p.Played)
	}
	if assert.NotNil(t, p.Scheduled) {
		assert.False(t, *p.Scheduled)
	}
}

func TestParseTriState(t *testing.T) {
	assert.Nil(t, parseTriState(""))
	assert.Nil(t, parseTriState("yes"))
	assert.Nil(t, parseTriState("1"))
	assert.True(t, *parseTriState("TRUE"))
	assert.False(t, *parseTriState("false"))
}

func TestPublicDefaults(t *testing.T) {
	assert.Equal(t, 12, PublicDefaults(12).Limit)
	assert.Equal(t, DefaultLimit, PublicDefaults(0).Limit)
	assert.Equal(t, MaxLimit, PublicDefaults(1000).Limit)

	p := ParseParams(url.Values{}, PublicDefaults(12))
	assert.Equal(t, 12, p.Limit)
}

func TestParams_Normalize(t *testing.T) {
	got := Params{}.Normalize(PublicDefaults(12))
	assert.Equal(t, DefaultPage, got.Page)
	assert.Equal(t, 12, got.Limit)
	assert.Equal(t, SortCreatedAt, got.SortField)
	assert.Equal(t, Desc, got.SortOrder)

	got = Params{Page: -3, Limit: 1000, SortField: "votes", SortOrder: "up"}.Normalize(InternalDefaults())
	assert.Equal(t, DefaultPage, got.Page)
	assert.Equal(t, MaxLimit, got.Limit)
	assert.Equal(t, SortVotes, got.SortField)
	assert.Equal(t, Desc, got.SortOrder)

	got = Params{Limit: 5}.Normalize(Defaults{})
	assert.Equal(t, 5, got.Limit)
	got = Params{}.Normalize(Defaults{})
	assert.Equal(t, DefaultLimit, got.Limit)
}
