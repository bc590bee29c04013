package analytics

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/angelmondragon/pos-analytics/pkg/config"
	"github.com/angelmondragon/pos-analytics/pkg/logger"
	"github.com/angelmondragon/pos-analytics/pkg/metrics"
	"github.com/angelmondragon/pos-analytics/pkg/redis"
)

// Cache stores serialized analytics responses in Redis. Keys embed a global
// version, so bumping the version invalidates every entry at once. A nil
// *Cache is valid and caches nothing.
type Cache struct {
	client     *redis.Client
	ttl        time.Duration
	maxEntries int64
	metrics    *metrics.AnalyticsMetrics
	logg       *logger.Logger
	now        func() time.Time
}

// CacheStats describes the current cache generation.
type CacheStats struct {
	Version int64 `json:"version"`
	Entries int64 `json:"entries"`
}

// NewCache returns nil when caching is disabled or no client is configured.
func NewCache(client *redis.Client, cfg config.CacheConfig, m *metrics.AnalyticsMetrics, logg *logger.Logger) *Cache {
	if client == nil || !cfg.Enabled {
		return nil
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Cache{
		client:     client,
		ttl:        cfg.TTL,
		maxEntries: cfg.MaxEntries,
		metrics:    m,
		logg:       logg,
		now:        time.Now,
	}
}

// Version returns the current cache generation, initialising it to 1.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if c == nil {
		return 0, nil
	}
	ver, err := c.client.GetInt(ctx, c.client.CacheVersionKey())
	if errors.Is(err, redis.ErrMiss) || (err == nil && ver <= 0) {
		if err := c.client.Set(ctx, c.client.CacheVersionKey(), 1, 0); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// Bump invalidates every cached response and returns the new generation.
func (c *Cache) Bump(ctx context.Context) (int64, error) {
	if c == nil {
		return 0, nil
	}
	return c.client.Incr(ctx, c.client.CacheVersionKey())
}

// Stats reports the generation and the number of tracked entries.
func (c *Cache) Stats(ctx context.Context) (CacheStats, error) {
	if c == nil {
		return CacheStats{}, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return CacheStats{}, err
	}
	n, err := c.client.IndexSize(ctx, c.client.CacheIndexKey())
	if err != nil {
		return CacheStats{}, err
	}
	return CacheStats{Version: ver, Entries: n}, nil
}

// Key derives the entry key for endpoint from the canonical JSON of params.
// Filters are normalized before they get here, so equivalent requests share
// a key.
func (c *Cache) Key(ctx context.Context, endpoint string, params any) (string, error) {
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("encode cache params: %w", err)
	}
	sum := sha256.Sum256(raw)
	return c.client.CacheKey("v"+strconv.FormatInt(ver, 10), endpoint, hex.EncodeToString(sum[:])), nil
}

func (c *Cache) get(ctx context.Context, key string, dest any) (bool, error) {
	payload, err := c.client.Get(ctx, key)
	if errors.Is(err, redis.ErrMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *Cache) put(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, raw, c.ttl); err != nil {
		return err
	}
	if err := c.client.IndexAdd(ctx, c.client.CacheIndexKey(), key, c.now()); err != nil {
		return err
	}
	evicted, err := c.client.IndexTrim(ctx, c.client.CacheIndexKey(), c.maxEntries)
	if err != nil {
		return err
	}
	c.metrics.CacheEvicted(len(evicted))
	return nil
}

// fetch serves endpoint from the cache or computes it with load. Cache
// failures are logged and never fail the request; load errors are never
// cached.
func fetch[T any](ctx context.Context, c *Cache, endpoint string, params any, load func(context.Context) (*T, error)) (*T, error) {
	if c == nil {
		return load(ctx)
	}

	key, err := c.Key(ctx, endpoint, params)
	if err != nil {
		c.fail(ctx, endpoint, "cache key", err)
		return load(ctx)
	}

	var cached T
	hit, err := c.get(ctx, key, &cached)
	switch {
	case err != nil:
		c.fail(ctx, endpoint, "cache read", err)
	case hit:
		c.metrics.CacheHit(endpoint)
		return &cached, nil
	default:
		c.metrics.CacheMiss(endpoint)
	}

	value, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.put(ctx, key, value); err != nil {
		c.fail(ctx, endpoint, "cache write", err)
	}
	return value, nil
}

func (c *Cache) fail(ctx context.Context, endpoint, op string, err error) {
	c.metrics.CacheError(endpoint)
	c.logg.Warn(c.logg.WithFields(ctx, map[string]any{
		"endpoint": endpoint,
		"op":       op,
		"error":    err.Error(),
	}), "analytics cache unavailable, serving from store")
}
