// Package fairness tracks how many match proposals each creator has
// received in a trailing window, so the matcher can spread exposure
// instead of piling every request onto the same top profiles.
package fairness

import (
	"context"
	"fmt"
	"sync"
	"time"

	"creatordna_backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

// Window counts recent proposals per creator.
type Window interface {
	// Incr records one proposal for the creator and returns the new count.
	Incr(ctx context.Context, creatorID string) (int64, error)
	// Count returns the creator's proposal count in the current window.
	Count(ctx context.Context, creatorID string) (int64, error)
	// Penalty maps the creator's count to [0,1]. 0 means no recent
	// proposals, 1 means at or above the saturation threshold.
	Penalty(ctx context.Context, creatorID string) float64
}

// RedisWindow is the production implementation: a fixed window keyed
// per creator, expired by Redis. Redis failures fail open (zero
// penalty) so matching never stalls on the counter store.
type RedisWindow struct {
	client     *redis.Client
	window     time.Duration
	saturation int64
}

func NewRedisWindow(client *redis.Client, window time.Duration, saturation int64) *RedisWindow {
	if saturation <= 0 {
		saturation = 20
	}
	return &RedisWindow{client: client, window: window, saturation: saturation}
}

func (w *RedisWindow) key(creatorID string) string {
	return fmt.Sprintf("fairness:proposals:%s", creatorID)
}

func (w *RedisWindow) Incr(ctx context.Context, creatorID string) (int64, error) {
	key := w.key(creatorID)
	count, err := w.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := w.client.Expire(ctx, key, w.window).Err(); err != nil {
			logger.CtxWarn(ctx, "failed to set fairness window expiry", "creator_id", creatorID, "error", err)
		}
	}
	return count, nil
}

func (w *RedisWindow) Count(ctx context.Context, creatorID string) (int64, error) {
	count, err := w.client.Get(ctx, w.key(creatorID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return count, err
}

func (w *RedisWindow) Penalty(ctx context.Context, creatorID string) float64 {
	count, err := w.Count(ctx, creatorID)
	if err != nil {
		logger.CtxWarn(ctx, "fairness counter unavailable, skipping penalty", "creator_id", creatorID, "error", err)
		return 0
	}
	return penalty(count, w.saturation)
}

// MemoryWindow is the in-process fallback used when Redis is not
// configured, and in tests.
type MemoryWindow struct {
	mu         sync.Mutex
	counts     map[string]int64
	expiry     map[string]time.Time
	window     time.Duration
	saturation int64
	now        func() time.Time
}

func NewMemoryWindow(window time.Duration, saturation int64) *MemoryWindow {
	if saturation <= 0 {
		saturation = 20
	}
	return &MemoryWindow{
		counts:     make(map[string]int64),
		expiry:     make(map[string]time.Time),
		window:     window,
		saturation: saturation,
		now:        time.Now,
	}
}

func (w *MemoryWindow) Incr(_ context.Context, creatorID string) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.expireLocked(creatorID)
	if w.counts[creatorID] == 0 {
		w.expiry[creatorID] = w.now().Add(w.window)
	}
	w.counts[creatorID]++
	return w.counts[creatorID], nil
}

func (w *MemoryWindow) Count(_ context.Context, creatorID string) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.expireLocked(creatorID)
	return w.counts[creatorID], nil
}

func (w *MemoryWindow) Penalty(ctx context.Context, creatorID string) float64 {
	count, _ := w.Count(ctx, creatorID)
	return penalty(count, w.saturation)
}

func (w *MemoryWindow) expireLocked(creatorID string) {
	if exp, ok := w.expiry[creatorID]; ok && w.now().After(exp) {
		delete(w.counts, creatorID)
		delete(w.expiry, creatorID)
	}
}

func penalty(count, saturation int64) float64 {
	if count <= 0 {
		return 0
	}
	p := float64(count) / float64(saturation)
	if p > 1 {
		p = 1
	}
	return p
}
