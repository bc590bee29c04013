package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/pos-analytics/pkg/config"
	"github.com/angelmondragon/pos-analytics/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace = "pa"
	cachePrefix  = "analytics"
	indexSuffix  = "index"
	versionKey   = "version"
)

// ErrMiss is returned by Get when the key does not exist.
var ErrMiss = redis.Nil

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Incr(context.Context, string) *redis.IntCmd
	Del(context.Context, ...string) *redis.IntCmd
	ZAdd(context.Context, string, ...redis.Z) *redis.IntCmd
	ZCard(context.Context, string) *redis.IntCmd
	ZRange(context.Context, string, int64, int64) *redis.StringSliceCmd
	ZRem(context.Context, string, ...any) *redis.IntCmd
}

// Client wraps the redis connection helpers used by the analytics cache.
type Client struct {
	store cmdable
	raw   *redis.Client
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

// New bootstraps a Redis client with pooling/timeouts and verifies connectivity.
func New(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if logg != nil {
		logg.Info(ctx, "redis connection established")
	}
	return &Client{store: raw, raw: raw}, nil
}

// FromRaw adopts an existing go-redis client.
func FromRaw(raw *redis.Client) *Client {
	return &Client{store: raw, raw: raw}
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

func (c *Client) ready() error {
	if c == nil || c.store == nil {
		return errors.New("redis client not initialized")
	}
	return nil
}

// Set stores a value with an optional TTL.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if err := c.ready(); err != nil {
		return err
	}
	return c.store.Set(ctx, key, value, ttl).Err()
}

// Get returns the raw bytes stored at key, or ErrMiss.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	return c.store.Get(ctx, key).Bytes()
}

// GetInt returns the integer stored at key, or ErrMiss.
func (c *Client) GetInt(ctx context.Context, key string) (int64, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}
	return c.store.Get(ctx, key).Int64()
}

// Incr increments the counter stored at key.
func (c *Client) Incr(ctx context.Context, key string) (int64, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}
	return c.store.Incr(ctx, key).Result()
}

// Del removes keys.
func (c *Client) Del(ctx context.Context, keys ...string) error {
	if err := c.ready(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.store.Del(ctx, keys...).Err()
}

// IndexAdd records member in the sorted-set index scored by insertion time.
func (c *Client) IndexAdd(ctx context.Context, index, member string, at time.Time) error {
	if err := c.ready(); err != nil {
		return err
	}
	return c.store.ZAdd(ctx, index, redis.Z{Score: float64(at.UnixNano()), Member: member}).Err()
}

// IndexSize returns the number of members tracked by index.
func (c *Client) IndexSize(ctx context.Context, index string) (int64, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}
	return c.store.ZCard(ctx, index).Result()
}

// IndexTrim keeps at most max members in index, deleting the oldest members
// and the keys they name. It returns the evicted keys.
func (c *Client) IndexTrim(ctx context.Context, index string, max int64) ([]string, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if max <= 0 {
		return nil, nil
	}
	size, err := c.store.ZCard(ctx, index).Result()
	if err != nil {
		return nil, err
	}
	excess := size - max
	if excess <= 0 {
		return nil, nil
	}
	evicted, err := c.store.ZRange(ctx, index, 0, excess-1).Result()
	if err != nil {
		return nil, err
	}
	if len(evicted) == 0 {
		return nil, nil
	}
	members := make([]any, len(evicted))
	for i, key := range evicted {
		members[i] = key
	}
	if err := c.store.ZRem(ctx, index, members...).Err(); err != nil {
		return nil, err
	}
	if err := c.store.Del(ctx, evicted...).Err(); err != nil {
		return nil, err
	}
	return evicted, nil
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.ready(); err != nil {
		return err
	}
	return c.store.Ping(ctx).Err()
}

// Close shuts down the pool.
func (c *Client) Close() error {
	if c == nil || c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

// CacheKey builds a namespaced analytics cache key.
func (c *Client) CacheKey(parts ...string) string {
	return buildKey(append([]string{cachePrefix}, parts...)...)
}

// CacheIndexKey names the sorted set that bounds the cache entry count.
func (c *Client) CacheIndexKey() string {
	return buildKey(cachePrefix, indexSuffix)
}

// CacheVersionKey names the counter whose increment invalidates the cache.
func (c *Client) CacheVersionKey() string {
	return buildKey(cachePrefix, versionKey)
}

func buildKey(parts ...string) string {
	clean := make([]string, 0, len(parts)+1)
	clean = append(clean, keyNamespace)
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			clean = append(clean, p)
		}
	}
	return strings.Join(clean, ":")
}
