package cache

import (
	"context"
	"time"
)

// Store is a byte cache with per-entry TTL. It fronts the raw OVapi fetch so
// repeated requests within the TTL window do not hammer the upstream API.
// A failed backend read is reported as a miss; cached data is never load-bearing.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}
