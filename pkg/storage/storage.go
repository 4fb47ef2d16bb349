// Package storage defines the durable string key-value store the storefront
// persists its state to.
package storage

import (
	"context"
	"errors"
)

// KV stores string values under string keys. Writes are synchronous: a Get
// issued after Set returns observes the new value.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// ErrNotFound indicates the requested key does not exist.
var ErrNotFound = errors.New("key not found")

// Prefixed namespaces every key of an underlying store.
type Prefixed struct {
	KV     KV
	Prefix string
}

// WithPrefix wraps kv so that keys are stored as prefix+key. An empty prefix
// returns kv unchanged.
func WithPrefix(kv KV, prefix string) KV {
	if prefix == "" {
		return kv
	}
	return Prefixed{KV: kv, Prefix: prefix}
}

// Get reads prefix+key.
func (p Prefixed) Get(ctx context.Context, key string) (string, error) {
	return p.KV.Get(ctx, p.Prefix+key)
}

// Set writes prefix+key.
func (p Prefixed) Set(ctx context.Context, key, value string) error {
	return p.KV.Set(ctx, p.Prefix+key, value)
}

// Delete removes prefix+key.
func (p Prefixed) Delete(ctx context.Context, key string) error {
	return p.KV.Delete(ctx, p.Prefix+key)
}
