package cache

import (
	"context"
	"testing"

	"github.com/rakapradana/supplychain-opt/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	c, err := NewDashboardCache(config.CacheConfig{Enabled: false})
	require.NoError(t, err)

	ctx := context.Background()

	table, ok, err := c.GetDecisions(ctx, "abc")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, table)

	require.NoError(t, c.SetDecisions(ctx, "abc", nil))
	require.NoError(t, c.InvalidateAll(ctx))
}

func TestRedisOptionsFromURL(t *testing.T) {
	opts, err := redisOptions(config.CacheConfig{
		RedisURL: "redis://:secret@cache.internal:6380/2",
	})
	require.NoError(t, err)
	require.Equal(t, "cache.internal:6380", opts.Addr)
	require.Equal(t, "secret", opts.Password)
	require.Equal(t, 2, opts.DB)
}

func TestRedisOptionsRejectsBadURL(t *testing.T) {
	_, err := redisOptions(config.CacheConfig{RedisURL: "://nope"})
	require.Error(t, err)
}

func TestRedisOptionsHostPortFallback(t *testing.T) {
	opts, err := redisOptions(config.CacheConfig{
		RedisHost:     "10.0.0.5",
		RedisPort:     "6390",
		RedisPassword: "pw",
		RedisDB:       1,
	})
	require.NoError(t, err)
	require.Equal(t, "10.0.0.5:6390", opts.Addr)
	require.Equal(t, "pw", opts.Password)
	require.Equal(t, 1, opts.DB)
}

func TestRedisOptionsDefaults(t *testing.T) {
	opts, err := redisOptions(config.CacheConfig{})
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:6379", opts.Addr)
}

func TestDecisionKeysShareInvalidationPrefix(t *testing.T) {
	key := buildDecisionsKey("deadbeef")
	require.Equal(t, "dashboard:decisions:deadbeef", key)
}
