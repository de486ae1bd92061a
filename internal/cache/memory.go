package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is the default in-process response cache.
type MemoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore creates an in-memory store with the given default TTL.
func NewMemoryStore(defaultTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		c: gocache.New(defaultTTL, 2*defaultTTL),
	}
}

// Get retrieves a cached response body.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

// Set caches a response body for ttl.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	s.c.Set(key, value, ttl)
}
