package assets

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheEntries bounds the cache when Options.CacheEntries is not
// positive.
const DefaultCacheEntries = 64

// CacheStats counts cache traffic since creation or the last PurgeCache.
type CacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

func (m *Manager) newCache(entries int) {
	if entries <= 0 {
		entries = DefaultCacheEntries
	}
	// NewWithEvict only fails for a non-positive size.
	m.cache, _ = lru.NewWithEvict(entries, func(string, []byte) {
		m.evictions.Add(1)
	})
}

func (m *Manager) cached(ref string) ([]byte, bool) {
	data, ok := m.cache.Get(ref)
	if ok {
		m.hits.Add(1)
	} else {
		m.misses.Add(1)
	}
	return data, ok
}

// CacheLen returns the number of cached payloads.
func (m *Manager) CacheLen() int {
	return m.cache.Len()
}

// CacheStats returns hit, miss and eviction counts.
func (m *Manager) CacheStats() CacheStats {
	return CacheStats{
		Hits:      m.hits.Load(),
		Misses:    m.misses.Load(),
		Evictions: m.evictions.Load(),
	}
}

// PurgeCache drops every cached payload and resets the statistics.
func (m *Manager) PurgeCache() {
	m.cache.Purge()
	m.hits.Store(0)
	m.misses.Store(0)
	m.evictions.Store(0)
}
