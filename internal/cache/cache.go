// Package cache provides the server-side ephemeral TTL cache used by the
// resolver tier. Entries expire lazily; eviction policy is whatever the
// underlying store does, which is acceptable here because the key space is
// bounded by the registry's own identifiers.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Manager is a typed TTL key/value store.
type Manager[V any] struct {
	cache *gocache.Cache
}

// New creates a Manager. defaultTTL applies when Set is called with a
// non-positive ttl; cleanupInterval drives background removal of expired
// entries on top of the lazy expiry done on Get.
func New[V any](defaultTTL, cleanupInterval time.Duration) *Manager[V] {
	return &Manager[V]{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns the value for key, or a miss if absent or expired.
func (m *Manager[V]) Get(key string) (V, bool) {
	var zero V

	value, found := m.cache.Get(key)
	if !found {
		return zero, false
	}

	v, ok := value.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

// Set stores value under key with the given ttl.
func (m *Manager[V]) Set(key string, value V, ttl time.Duration) {
	m.cache.Set(key, value, ttl)
}

// Delete removes the given keys.
func (m *Manager[V]) Delete(keys ...string) {
	for _, key := range keys {
		m.cache.Delete(key)
	}
}

// Flush drops every entry.
func (m *Manager[V]) Flush() {
	m.cache.Flush()
}
