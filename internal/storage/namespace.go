package storage

import (
	"context"
)

// Namespace returns a view of s where every key is prefixed with ns and a colon.
// Views do not own s and have nothing to close.
func Namespace(s Store, ns string) Store {
	return &namespaced{store: s, prefix: ns + ":"}
}

type namespaced struct {
	store  Store
	prefix string
}

func (n *namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.store.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.store.Set(ctx, n.prefix+key, value)
}

// Route returns a Store that sends the keys listed in routes to their store
// and every other key to fallback.
func Route(fallback Store, routes map[string]Store) Store {
	return &router{fallback: fallback, routes: routes}
}

type router struct {
	fallback Store
	routes   map[string]Store
}

func (r *router) pick(key string) Store {
	if s, ok := r.routes[key]; ok {
		return s
	}
	return r.fallback
}

func (r *router) Get(ctx context.Context, key string) (string, bool, error) {
	return r.pick(key).Get(ctx, key)
}

func (r *router) Set(ctx context.Context, key, value string) error {
	return r.pick(key).Set(ctx, key, value)
}
