package songs

import (
	"strings"

	"github.com/justestif/go-song-board/internal/db"
)

// nameIndex groups requesters by plain name.
type nameIndex map[string][]db.Requester

func newNameIndex(requesters []db.Requester) nameIndex {
	ix := make(nameIndex)
	for _, r := range requesters {
		name := deref(r.Name)
		if name == "" {
			continue
		}
		ix[name] = append(ix[name], r)
	}
	return ix
}

// displayName disambiguates r's name among requesters sharing it.
// A unique name is kept as is. A shared name gets the grade appended, and
// when others with that name share the grade too, grade and class.
// A requester without a grade keeps the plain name.
func (ix nameIndex) displayName(r db.Requester) string {
	name := deref(r.Name)
	namesakes := ix[name]
	grade := deref(r.Grade)
	if name == "" || grade == "" || len(namesakes) <= 1 {
		return name
	}

	sameGrade := 0
	for _, other := range namesakes {
		if deref(other.Grade) == grade {
			sameGrade++
		}
	}

	suffix := grade
	if sameGrade > 1 {
		suffix = strings.TrimSpace(grade + " " + deref(r.Class))
	}
	return name + "(" + suffix + ")"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
