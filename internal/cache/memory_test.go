package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediapack/internal/models"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := newMemoryCache()
	ctx := context.Background()

	err := cache.Set(ctx, "publication:pub-1", "snapshot-payload", 1*time.Hour)
	require.NoError(t, err)

	value, err := cache.Get(ctx, "publication:pub-1")
	require.NoError(t, err)
	assert.Equal(t, "snapshot-payload", value)
}

func TestMemoryCache_Get_Miss(t *testing.T) {
	cache := newMemoryCache()
	ctx := context.Background()

	value, err := cache.Get(ctx, "publication:unknown")
	assert.Nil(t, value)
	assert.ErrorIs(t, err, models.ErrCacheMiss)
}

func TestMemoryCache_Get_Expired(t *testing.T) {
	cache := newMemoryCache()
	ctx := context.Background()

	err := cache.Set(ctx, "expiring-key", "expiring-value", 100*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(200 * time.Millisecond)

	value, err := cache.Get(ctx, "expiring-key")
	assert.Nil(t, value)
	assert.ErrorIs(t, err, models.ErrCacheMiss)
}

func TestMemoryCache_Set_InvalidTTL(t *testing.T) {
	cache := newMemoryCache()
	ctx := context.Background()

	tests := []struct {
		name string
		ttl  time.Duration
	}{
		{"zero TTL", 0},
		{"negative TTL", -1 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cache.Set(ctx, "test-key", "test-value", tt.ttl)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "TTL must be positive")
		})
	}
}

func TestMemoryCache_Set_Overwrite(t *testing.T) {
	cache := newMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value1", 1*time.Hour))
	require.NoError(t, cache.Set(ctx, "key", "value2", 1*time.Hour))

	value, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value2", value)
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := newMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "test-key", "test-value", 1*time.Hour))
	require.NoError(t, cache.Delete(ctx, "test-key"))

	value, err := cache.Get(ctx, "test-key")
	assert.Nil(t, value)
	assert.ErrorIs(t, err, models.ErrCacheMiss)

	// Deleting a missing key is not an error
	assert.NoError(t, cache.Delete(ctx, "non-existent"))
}

func TestMemoryCache_StoresStructValues(t *testing.T) {
	cache := newMemoryCache()
	ctx := context.Background()

	pub := &models.Publication{ID: "pub-1", Name: "The Ledger"}
	require.NoError(t, cache.Set(ctx, "publication:pub-1", pub, 1*time.Hour))

	value, err := cache.Get(ctx, "publication:pub-1")
	require.NoError(t, err)
	assert.Same(t, pub, value)
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := newMemoryCache()
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("key-%d", i), i, 1*time.Hour))
	}

	done := make(chan bool)

	for i := 0; i < 10; i++ {
		go func(id int) {
			for j := 0; j < 100; j++ {
				_ = cache.Set(ctx, fmt.Sprintf("concurrent-%d-%d", id, j), id*100+j, 1*time.Hour)
			}
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				_, _ = cache.Get(ctx, fmt.Sprintf("key-%d", j))
			}
			done <- true
		}()
	}

	for i := 0; i < 20; i++ {
		<-done
	}

	assert.Equal(t, 1100, cache.Size())
}
