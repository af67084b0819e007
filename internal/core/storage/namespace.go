package storage

import (
	"context"
	"time"
)

// Namespaced prefixes every key so several storefronts can share one backend.
type Namespaced struct {
	Store
	prefix string
}

// WithNamespace wraps s. An empty namespace returns s unchanged.
func WithNamespace(s Store, namespace string) Store {
	if namespace == "" {
		return s
	}
	return &Namespaced{Store: s, prefix: namespace + ":"}
}

func (n *Namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.Store.Get(ctx, n.prefix+key)
}

func (n *Namespaced) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return n.Store.Set(ctx, n.prefix+key, value, ttl)
}

func (n *Namespaced) Delete(ctx context.Context, key string) error {
	return n.Store.Delete(ctx, n.prefix+key)
}
