// Package redisstore provides a Redis-backed implementation of storage.Backend.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mmynk/amigo/internal/storage"
)

var _ storage.Backend = (*Store)(nil)

// Store keeps each key as a plain Redis string under an optional prefix.
type Store struct {
	client *redis.Client
	prefix string
}

// New connects to Redis and verifies the connection with a PING.
// prefix is prepended to every key, e.g. "amigo:".
func New(ctx context.Context, opts *redis.Options, prefix string) (*Store, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return &Store{client: client, prefix: prefix}, nil
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key with no expiry.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
