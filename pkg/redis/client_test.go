package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/pos-analytics/pkg/config"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	raw := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = raw.Close() })
	return FromRaw(raw), mr
}

func TestSetGetAndMiss(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)

	require.NoError(t, client.Set(ctx, "k", []byte(`{"a":1}`), time.Minute))
	got, err := client.Get(ctx, "k")
	require.NoError(t, err)
	require.JSONEq(t, `{"a":1}`, string(got))

	mr.FastForward(2 * time.Minute)
	_, err = client.Get(ctx, "k")
	require.True(t, errors.Is(err, ErrMiss))
}

func TestIncrAndGetInt(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)

	_, err := client.GetInt(ctx, client.CacheVersionKey())
	require.ErrorIs(t, err, ErrMiss)

	v, err := client.Incr(ctx, client.CacheVersionKey())
	require.NoError(t, err)
	require.Equal(t, int64(1), v)

	got, err := client.GetInt(ctx, client.CacheVersionKey())
	require.NoError(t, err)
	require.Equal(t, int64(1), got)
}

func TestIndexTrimEvictsOldest(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	index := client.CacheIndexKey()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, key := range []string{"a", "b", "c", "d"} {
		require.NoError(t, client.Set(ctx, key, "x", 0))
		require.NoError(t, client.IndexAdd(ctx, index, key, base.Add(time.Duration(i)*time.Second)))
	}

	evicted, err := client.IndexTrim(ctx, index, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, evicted)
	require.False(t, mr.Exists("a"))
	require.False(t, mr.Exists("b"))
	require.True(t, mr.Exists("c"))

	size, err := client.IndexSize(ctx, index)
	require.NoError(t, err)
	require.Equal(t, int64(2), size)

	evicted, err = client.IndexTrim(ctx, index, 2)
	require.NoError(t, err)
	require.Empty(t, evicted)
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	require.Equal(t, "pa:analytics:v3:overview:abc", client.CacheKey("v3", "overview", " ", "abc"))
	require.Equal(t, "pa:analytics:index", client.CacheIndexKey())
	require.Equal(t, "pa:analytics:version", client.CacheVersionKey())
}

func TestUninitializedClient(t *testing.T) {
	var client *Client
	require.Error(t, client.Ping(context.Background()))
	require.NoError(t, client.Close())
}

func TestOptionsFromConfig(t *testing.T) {
	_, err := optionsFromConfig(config.RedisConfig{})
	require.Error(t, err)

	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6379/2", PoolSize: 7})
	require.NoError(t, err)
	require.Equal(t, 2, opts.DB)
	require.Equal(t, 7, opts.PoolSize)

	opts, err = optionsFromConfig(config.RedisConfig{Address: "cache:6379", DB: 1})
	require.NoError(t, err)
	require.Equal(t, "cache:6379", opts.Addr)
	require.Equal(t, 1, opts.DB)
}
