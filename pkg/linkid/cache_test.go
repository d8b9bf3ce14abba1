package linkid

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCache_SetGet(t *testing.T) {
	cache, err := newResultCache(4)
	require.NoError(t, err)

	cache.set("k", Redirect{URI: "https://example.org/one"}, time.Minute)

	res, ok := cache.get("k")
	require.True(t, ok)
	assert.Equal(t, "https://example.org/one", res.(Redirect).URI)
}

func TestResultCache_LazyExpiry(t *testing.T) {
	cache, err := newResultCache(4)
	require.NoError(t, err)

	cache.set("k", Redirect{URI: "https://example.org/one"}, -time.Second)

	_, ok := cache.get("k")
	assert.False(t, ok)
	assert.Zero(t, cache.entries.Len())
}

func TestResultCache_Purge(t *testing.T) {
	cache, err := newResultCache(4)
	require.NoError(t, err)

	cache.set("a", Redirect{URI: "https://example.org/a"}, time.Minute)
	cache.set("b", Redirect{URI: "https://example.org/b"}, time.Minute)
	cache.purge()

	_, ok := cache.get("a")
	assert.False(t, ok)
	_, ok = cache.get("b")
	assert.False(t, ok)
}

func TestResultCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache, err := newResultCache(2)
	require.NoError(t, err)

	cache.set("a", Redirect{URI: "https://example.org/a"}, time.Minute)
	cache.set("b", Redirect{URI: "https://example.org/b"}, time.Minute)

	_, ok := cache.get("a")
	require.True(t, ok)

	cache.set("c", Redirect{URI: "https://example.org/c"}, time.Minute)

	_, ok = cache.get("b")
	assert.False(t, ok)
	_, ok = cache.get("a")
	assert.True(t, ok)
}

func TestResultCache_BoundedUnderFanOut(t *testing.T) {
	cache, err := newResultCache(8)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		cache.set("key-"+strconv.Itoa(i), Redirect{URI: "https://example.org/r"}, time.Minute)
	}
	assert.LessOrEqual(t, cache.entries.Len(), 8)
}
