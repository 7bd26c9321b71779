package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/arbor/pkg/adapters/redis"
	contract "github.com/aretw0/arbor/pkg/ports/tests"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisCache_Contract(t *testing.T) {
	_, client := newClient(t)
	contract.RunExpansionCacheContract(t, redis.NewFromClient(client))
}

func TestRedisCache_Prefix(t *testing.T) {
	mr, client := newClient(t)
	cache := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "abc", "FF"))
	assert.True(t, mr.Exists("custom:app:abc"))
	assert.True(t, mr.Exists("custom:app:index"))

	got, err := mr.Get("custom:app:abc")
	require.NoError(t, err)
	assert.Equal(t, "FF", got)
}

func TestRedisCache_TTL(t *testing.T) {
	mr, client := newClient(t)
	cache := redis.NewFromClient(client, redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "abc", "FF"))
	assert.Equal(t, time.Minute, mr.TTL(redis.DefaultPrefix+"abc"))

	mr.FastForward(2 * time.Minute)
	_, ok, err := cache.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)
}
