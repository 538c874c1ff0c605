package fairness

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryWindow_Counts(t *testing.T) {
	w := NewMemoryWindow(time.Hour, 10)
	ctx := context.Background()

	count, err := w.Count(ctx, "c1")
	require.NoError(t, err)
	assert.Zero(t, count)

	for i := int64(1); i <= 5; i++ {
		count, err = w.Incr(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	assert.InDelta(t, 0.5, w.Penalty(ctx, "c1"), 1e-9)
	assert.Zero(t, w.Penalty(ctx, "other"))
}

func TestMemoryWindow_PenaltySaturates(t *testing.T) {
	w := NewMemoryWindow(time.Hour, 4)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := w.Incr(ctx, "c1")
		require.NoError(t, err)
	}
	assert.InDelta(t, 1.0, w.Penalty(ctx, "c1"), 1e-9)
}

func TestMemoryWindow_Expiry(t *testing.T) {
	w := NewMemoryWindow(time.Minute, 10)
	now := time.Now()
	w.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := w.Incr(ctx, "c1")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	count, err := w.Count(ctx, "c1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRedisWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	w := NewRedisWindow(client, time.Hour, 10)
	ctx := context.Background()

	count, err := w.Incr(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = w.Incr(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	assert.InDelta(t, 0.2, w.Penalty(ctx, "c1"), 1e-9)

	// key expires with the window
	mr.FastForward(2 * time.Hour)
	count, err = w.Count(ctx, "c1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRedisWindow_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	w := NewRedisWindow(client, time.Hour, 10)
	mr.Close()

	assert.Zero(t, w.Penalty(context.Background(), "c1"))
}
