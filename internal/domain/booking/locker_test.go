package booking

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSlotLockerIgnoresStaleRelease(t *testing.T) {
	ctx := context.Background()
	l := NewLocalSlotLocker()

	first, ok, err := l.Acquire(ctx, "2024-06-10", "10:00")
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.Acquire(ctx, "2024-06-10", "10:00")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, l.Release(ctx, "2024-06-10", "10:00", "someone-else"))
	_, ok, _ = l.Acquire(ctx, "2024-06-10", "10:00")
	assert.False(t, ok, "a foreign token must not free the slot")

	require.NoError(t, l.Release(ctx, "2024-06-10", "10:00", first))
	_, ok, _ = l.Acquire(ctx, "2024-06-10", "10:00")
	assert.True(t, ok)
}

func TestRedisSlotLockerReleasesOnlyOwnLock(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	l := NewRedisSlotLocker(client)

	slow, ok, err := l.Acquire(ctx, "2024-06-10", "10:00")
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.Acquire(ctx, "2024-06-10", "10:00")
	require.NoError(t, err)
	assert.False(t, ok)

	// the slow holder outlives its TTL and someone else takes the slot
	mr.FastForward(slotLockTTL + time.Second)
	fast, ok, err := l.Acquire(ctx, "2024-06-10", "10:00")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, l.Release(ctx, "2024-06-10", "10:00", slow))
	_, ok, err = l.Acquire(ctx, "2024-06-10", "10:00")
	require.NoError(t, err)
	assert.False(t, ok, "stale release must keep the current holder's lock")

	require.NoError(t, l.Release(ctx, "2024-06-10", "10:00", fast))
	assert.False(t, mr.Exists(slotLockKey("2024-06-10", "10:00")))
}
