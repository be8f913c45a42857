package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client, "shipment:", ttl), mr
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	c, _ := newTestRedisCache(t, time.Minute)

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("a", []byte("1"))
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, []byte("1"), v)

	c.Delete("a")
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestRedisCache_KeysArePrefixed(t *testing.T) {
	c, mr := newTestRedisCache(t, time.Minute)

	c.Set("a", []byte("1"))
	assert.True(t, mr.Exists("shipment:a"))
}

func TestRedisCache_Expiration(t *testing.T) {
	c, mr := newTestRedisCache(t, time.Minute)

	c.Set("a", []byte("1"))
	mr.FastForward(2 * time.Minute)

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestRedisCache_Start(t *testing.T) {
	c, mr := newTestRedisCache(t, time.Minute)

	require.NoError(t, c.Start(context.Background()))

	mr.Close()
	assert.Error(t, c.Start(context.Background()))
}
