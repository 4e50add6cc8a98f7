package encoder

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CachedEncoder wraps an inner Encoder with an in-process LRU cache backed
// by an optional Redis tier, retry-with-backoff, and a simple circuit
// breaker, so a flaky remote embedding model degrades to the fallback
// paths instead of hanging the pipeline.
type CachedEncoder struct {
	inner   Encoder
	redis   *redis.Client
	logger  *zap.Logger
	maxSize int

	mu     sync.RWMutex
	cache  map[string][]float32
	access map[string]time.Time

	cbMu          sync.Mutex
	cbFailures    int
	cbThreshold   int
	cbCooldown    time.Duration
	cbOpenedUntil time.Time

	maxRetries int

	hits   Counter
	misses Counter
}

// Counter is the subset of a metrics counter the cache increments;
// prometheus counters satisfy it directly.
type Counter interface{ Inc() }

// CacheOption configures a CachedEncoder.
type CacheOption func(*CachedEncoder)

func WithRedis(client *redis.Client) CacheOption {
	return func(c *CachedEncoder) { c.redis = client }
}

func WithLogger(l *zap.Logger) CacheOption {
	return func(c *CachedEncoder) { c.logger = l }
}

func WithMaxSize(n int) CacheOption {
	return func(c *CachedEncoder) { c.maxSize = n }
}

// WithCacheMetrics wires hit/miss counters (e.g. telemetry.Metrics'
// CacheHits/CacheMisses). Either may be nil.
func WithCacheMetrics(hits, misses Counter) CacheOption {
	return func(c *CachedEncoder) { c.hits, c.misses = hits, misses }
}

// NewCachedEncoder wraps inner with caching, retries, and a circuit
// breaker. redis may be nil, in which case caching is in-process only.
func NewCachedEncoder(inner Encoder, opts ...CacheOption) *CachedEncoder {
	c := &CachedEncoder{
		inner:       inner,
		logger:      zap.NewNop(),
		maxSize:     10000,
		cache:       make(map[string][]float32),
		access:      make(map[string]time.Time),
		cbThreshold: 5,
		cbCooldown:  10 * time.Second,
		maxRetries:  3,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *CachedEncoder) SupportsBatch() bool { return c.inner.SupportsBatch() }

// Encode resolves each text through the cache, then fans out only the
// misses to the inner encoder (batched if it supports it), caching the
// results on the way back.
func (c *CachedEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	missIdx := make([]int, 0, len(texts))
	missTexts := make([]string, 0, len(texts))

	for i, t := range texts {
		if v, ok := c.get(ctx, t); ok {
			if c.hits != nil {
				c.hits.Inc()
			}
			out[i] = v
			continue
		}
		if c.misses != nil {
			c.misses.Inc()
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, t)
	}

	if len(missTexts) == 0 {
		return out, nil
	}

	if c.breakerOpen() {
		return nil, ErrUnavailable
	}

	var computed [][]float32
	var err error
	if c.inner.SupportsBatch() {
		computed, err = c.callWithRetry(ctx, missTexts)
	} else {
		computed = make([][]float32, len(missTexts))
		for i, t := range missTexts {
			var single [][]float32
			single, err = c.callWithRetry(ctx, []string{t})
			if err != nil {
				break
			}
			computed[i] = single[0]
		}
	}
	if err != nil {
		c.recordFailure()
		return nil, fmt.Errorf("encoder: %w", err)
	}
	c.recordSuccess()

	for i, v := range computed {
		out[missIdx[i]] = v
		c.set(ctx, missTexts[i], v)
	}
	return out, nil
}

func (c *CachedEncoder) callWithRetry(ctx context.Context, texts []string) ([][]float32, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		v, err := c.inner.Encode(ctx, texts)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if attempt < c.maxRetries-1 {
			delay := time.Duration(1<<uint(attempt)) * 200 * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil, lastErr
}

func (c *CachedEncoder) breakerOpen() bool {
	c.cbMu.Lock()
	defer c.cbMu.Unlock()
	return time.Now().Before(c.cbOpenedUntil)
}

func (c *CachedEncoder) recordFailure() {
	c.cbMu.Lock()
	defer c.cbMu.Unlock()
	c.cbFailures++
	if c.cbFailures >= c.cbThreshold {
		c.cbOpenedUntil = time.Now().Add(c.cbCooldown)
		c.logger.Warn("encoder circuit breaker opened", zap.Int("failures", c.cbFailures))
	}
}

func (c *CachedEncoder) recordSuccess() {
	c.cbMu.Lock()
	defer c.cbMu.Unlock()
	c.cbFailures = 0
}

func (c *CachedEncoder) get(ctx context.Context, key string) ([]float32, bool) {
	c.mu.RLock()
	v, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.access[key] = time.Now()
		c.mu.Unlock()
		return v, true
	}
	if c.redis == nil {
		return nil, false
	}
	raw, err := c.redis.Get(ctx, redisKey(key)).Bytes()
	if err != nil {
		return nil, false
	}
	var vec []float32
	if err := json.Unmarshal(raw, &vec); err != nil {
		return nil, false
	}
	c.set(ctx, key, vec)
	return vec, true
}

func (c *CachedEncoder) set(ctx context.Context, key string, v []float32) {
	c.mu.Lock()
	if len(c.cache) >= c.maxSize {
		c.evictLocked()
	}
	c.cache[key] = v
	c.access[key] = time.Now()
	c.mu.Unlock()

	if c.redis != nil {
		if raw, err := json.Marshal(v); err == nil {
			c.redis.Set(ctx, redisKey(key), raw, 24*time.Hour)
		}
	}
}

// evictLocked removes the oldest-accessed 20% of entries. Caller holds c.mu.
func (c *CachedEncoder) evictLocked() {
	type item struct {
		key    string
		access time.Time
	}
	items := make([]item, 0, len(c.access))
	for k, t := range c.access {
		items = append(items, item{k, t})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].access.Before(items[j].access) })
	remove := len(items) / 5
	for i := 0; i < remove; i++ {
		delete(c.cache, items[i].key)
		delete(c.access, items[i].key)
	}
}

func (c *CachedEncoder) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func redisKey(text string) string {
	return "legalrisk:emb:" + fmt.Sprintf("%x", hashText(text))
}

func hashText(s string) uint64 {
	var h uint64 = 1469598103934665603
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}
