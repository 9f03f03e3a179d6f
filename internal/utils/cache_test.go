package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache[string](10, time.Minute)

	c.Set("k", "v")

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
	assert.Equal(t, 1, c.Len())
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache[int](10, 20*time.Millisecond)

	c.Set("k", 42)
	time.Sleep(40 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
	// 过期条目在读取时被摘除
	assert.Equal(t, 0, c.Len())
}

func TestTTLCacheTouchExtendsLifetime(t *testing.T) {
	c := NewTTLCache[int](10, 60*time.Millisecond)

	c.Set("k", 1)
	time.Sleep(40 * time.Millisecond)
	c.Touch("k")
	time.Sleep(40 * time.Millisecond)

	_, ok := c.Get("k")
	assert.True(t, ok)
}

func TestTTLCachePurgeExpired(t *testing.T) {
	c := NewTTLCache[int](10, 20*time.Millisecond)

	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(40 * time.Millisecond)
	c.Set("c", 3)

	purged := c.PurgeExpired()

	assert.Equal(t, 2, purged)
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("c")
	assert.True(t, ok)
}

func TestTTLCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewTTLCache[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestGlobalCacheRoundTrip(t *testing.T) {
	InitCache()

	CacheSet("key", "value", time.Minute)
	got, found := CacheGet("key")
	require.True(t, found)
	assert.Equal(t, "value", got)

	CacheDelete("key")
	_, found = CacheGet("key")
	assert.False(t, found)
}
