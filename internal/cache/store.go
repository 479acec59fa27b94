// Package cache provides the shared query-result cache: a byte-valued Store
// with in-memory and PostgreSQL backends, named namespaces over a single
// store, and a compressed JSON codec for typed values.
//
// Entries have no read-time expiry. They live until an external writer
// replaces or removes them.
package cache

import (
	"context"
	"errors"
)

// ErrMiss is returned when a key is not present.
var ErrMiss = errors.New("cache miss")

// Store is a plain get/set byte store.
type Store interface {
	// Get returns the value for key, or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}
