package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// Accessor reads and writes typed values in one namespace.
type Accessor[T any] struct {
	ns     *Namespace
	codec  *Codec
	logger *log.Logger
}

// NewAccessor creates an Accessor for namespace name of store.
func NewAccessor[T any](store Store, name string, codec *Codec, logger *log.Logger) *Accessor[T] {
	if logger == nil {
		logger = log.Default()
	}
	return &Accessor[T]{
		ns:     NewNamespace(store, name),
		codec:  codec,
		logger: logger,
	}
}

// Lookup returns the value for key and whether it was present.
func (a *Accessor[T]) Lookup(ctx context.Context, key string) (T, bool, error) {
	var v T
	data, err := a.ns.Get(ctx, key)
	if errors.Is(err, ErrMiss) {
		a.logger.Debug("cache miss", "namespace", a.ns.Name(), "key", key)
		return v, false, nil
	}
	if err != nil {
		return v, false, fmt.Errorf("reading cache: %w", err)
	}
	if err := a.codec.Unmarshal(data, &v); err != nil {
		return v, false, err
	}
	a.logger.Debug("cache hit", "namespace", a.ns.Name(), "key", key, "size", humanize.Bytes(uint64(len(data))))
	return v, true, nil
}

// Store writes v under key.
func (a *Accessor[T]) Store(ctx context.Context, key string, v T) error {
	data, err := a.codec.Marshal(v)
	if err != nil {
		return err
	}
	if err := a.ns.Set(ctx, key, data); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	a.logger.Debug("cache write", "namespace", a.ns.Name(), "key", key, "size", humanize.Bytes(uint64(len(data))))
	return nil
}
