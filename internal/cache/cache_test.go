package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSet(t *testing.T) {
	c := New(true)

	etag := c.Set("rankings:men:2025-26:teams", []byte(`{"teamId":1}`), TTLRankings)
	require.NotEmpty(t, etag)

	data, got, ok := c.Get("rankings:men:2025-26:teams")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"teamId":1}`), data)
	assert.Equal(t, etag, got)
}

func TestGetMissing(t *testing.T) {
	c := New(true)
	_, _, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c := New(true)
	c.Set("short", []byte("x"), time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	_, _, ok := c.Get("short")
	assert.False(t, ok)
}

func TestDisabledCacheIsNoOp(t *testing.T) {
	c := New(false)
	etag := c.Set("k", []byte("v"), TTLEntity)
	assert.NotEmpty(t, etag, "ETag is still computed so handlers can set headers")
	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	c := New(true)
	c.Set("a", []byte("1"), TTLRankings)
	c.Set("b", []byte("2"), time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	stats := c.Stats()
	assert.Equal(t, true, stats["enabled"])
	assert.Equal(t, 2, stats["total_keys"])
	assert.Equal(t, 1, stats["active_keys"])
	assert.Equal(t, 1, stats["expired_keys"])
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("payload"))
	assert.True(t, CheckETagMatch(etag, etag))
	assert.True(t, CheckETagMatch("*", etag))
	assert.False(t, CheckETagMatch("", etag))
	assert.False(t, CheckETagMatch(`W/"other"`, etag))
}
