// Package redisstore implements storage.KV on a Redis server.
package redisstore

import (
	"context"

	"github.com/redis/go-redis/v9"

	"storefront/pkg/storage"
)

// Store persists key-value pairs as plain Redis strings without expiry.
type Store struct {
	rdb *redis.Client
}

// New creates a Redis-backed store.
func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Get retrieves the value for key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", storage.ErrNotFound
	}
	return v, err
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	n, err := s.rdb.Del(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

var _ storage.KV = (*Store)(nil)
