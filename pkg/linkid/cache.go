package linkid

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheEntry struct {
	res       Resolution
	expiresAt time.Time
}

// resultCache is a bounded LRU of resolution results with per-entry TTL.
// Expiry is lazy: a stale entry is evicted on the read that observes it.
type resultCache struct {
	entries *lru.Cache[string, cacheEntry]
}

func newResultCache(size int) (*resultCache, error) {
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &resultCache{entries: entries}, nil
}

func (c *resultCache) get(key string) (Resolution, bool) {
	entry, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	if !time.Now().Before(entry.expiresAt) {
		c.entries.Remove(key)
		return nil, false
	}
	return entry.res, true
}

func (c *resultCache) set(key string, res Resolution, ttl time.Duration) {
	c.entries.Add(key, cacheEntry{res: res, expiresAt: time.Now().Add(ttl)})
}

func (c *resultCache) purge() {
	c.entries.Purge()
}
