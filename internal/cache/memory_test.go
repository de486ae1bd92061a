package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	t.Run("miss on empty store", func(t *testing.T) {
		_, ok := store.Get(ctx, "tpc/1/departures")
		assert.False(t, ok)
	})

	t.Run("round trip", func(t *testing.T) {
		store.Set(ctx, "tpc/1/departures", []byte(`{"a":1}`), time.Minute)
		body, ok := store.Get(ctx, "tpc/1/departures")
		assert.True(t, ok)
		assert.Equal(t, []byte(`{"a":1}`), body)
	})

	t.Run("entries expire after their TTL", func(t *testing.T) {
		store.Set(ctx, "tpc/2/departures", []byte(`{}`), 10*time.Millisecond)
		time.Sleep(30 * time.Millisecond)
		_, ok := store.Get(ctx, "tpc/2/departures")
		assert.False(t, ok)
	})
}
