package kv

import (
	"context"
	"time"
)

// Store is a byte-oriented key-value store.
// Implementations must make Set atomic from a reader's point of view.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent or expired.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of 0 keeps the value forever.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ScopedStore prefixes every key before delegating to an inner store.
type ScopedStore struct {
	inner  Store
	prefix string
}

// NewScopedStore wraps inner so that all keys are stored as prefix+key.
// A nil inner store is replaced by a [NullStore].
func NewScopedStore(inner Store, prefix string) Store {
	if inner == nil {
		inner = NewNullStore()
	}
	return &ScopedStore{inner: inner, prefix: prefix}
}

func (s *ScopedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *ScopedStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

func (s *ScopedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close closes the inner store.
func (s *ScopedStore) Close() error { return s.inner.Close() }

var _ Store = (*ScopedStore)(nil)
