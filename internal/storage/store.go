// Package storage provides abstractions for the persisted key-value store.
package storage

import (
	"context"
)

// Store is a durable, string-keyed store.
// Reads and writes are independent: there are no transactions across keys.
type Store interface {
	// Get returns the value stored under key.
	// The boolean is false when the key has never been written.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key, value string) error
}

// Backend is a Store that owns resources.
// This abstraction allows swapping storage backends (SQLite, Redis, PostgreSQL)
// without changing the records layer.
type Backend interface {
	Store

	// Close releases any resources held by the store.
	Close() error
}
