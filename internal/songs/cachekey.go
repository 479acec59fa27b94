package songs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// cacheKeyTag prefixes every listing cache key.
const cacheKeyTag = "song-list"

// cacheKeyInput is the canonical, ordered form of the keyed parameters.
type cacheKeyInput struct {
	Search    string    `json:"search"`
	Semester  string    `json:"semester"`
	SortField SortField `json:"sortBy"`
	SortOrder SortOrder `json:"sortOrder"`
}

// CacheKey derives the cache key for p. Only search, semester and the sort
// take part: requests differing in grade, played, scheduled, page or limit
// share one key and therefore one cached result.
func CacheKey(p Params) string {
	// Marshaling a struct of strings cannot fail.
	data, _ := json.Marshal(cacheKeyInput{
		Search:    p.Search,
		Semester:  p.Semester,
		SortField: p.SortField,
		SortOrder: p.SortOrder,
	})
	sum := sha256.Sum256(data)
	return cacheKeyTag + ":" + hex.EncodeToString(sum[:])
}
