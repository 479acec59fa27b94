package cache

import "context"

// Namespace scopes keys of a shared Store under a fixed name.
type Namespace struct {
	store Store
	name  string
}

// NewNamespace returns a view of store whose keys are prefixed with name.
func NewNamespace(store Store, name string) *Namespace {
	return &Namespace{store: store, name: name}
}

// Name returns the namespace name.
func (n *Namespace) Name() string {
	return n.name
}

// Get reads key within the namespace.
func (n *Namespace) Get(ctx context.Context, key string) ([]byte, error) {
	return n.store.Get(ctx, n.qualify(key))
}

// Set writes key within the namespace.
func (n *Namespace) Set(ctx context.Context, key string, value []byte) error {
	return n.store.Set(ctx, n.qualify(key), value)
}

func (n *Namespace) qualify(key string) string {
	return n.name + ":" + key
}

var _ Store = (*Namespace)(nil)
