package spyglass

import "sync"

// MatchCache memoizes BestFit for one catalog. Masks repeat heavily in real
// images (flat regions all binarize to zero), so most lookups hit. It is
// safe for concurrent use.
type MatchCache struct {
	catalog *Catalog

	mu     sync.RWMutex
	fits   map[Bitmap]Fit
	hits   int
	misses int
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Hits    int
	Misses  int
	Entries int
}

// HitRate returns hits as a fraction of all lookups.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// NewMatchCache creates an empty cache over c.
func NewMatchCache(c *Catalog) *MatchCache {
	return &MatchCache{
		catalog: c,
		fits:    make(map[Bitmap]Fit),
	}
}

// BestFit returns the cached fit for mask, computing it on a miss.
func (m *MatchCache) BestFit(mask Bitmap) Fit {
	m.mu.RLock()
	fit, ok := m.fits[mask]
	m.mu.RUnlock()
	if ok {
		m.mu.Lock()
		m.hits++
		m.mu.Unlock()
		return fit
	}

	fit = BestFit(mask, m.catalog)
	m.mu.Lock()
	m.fits[mask] = fit
	m.misses++
	m.mu.Unlock()
	return fit
}

// Stats returns a snapshot of the counters.
func (m *MatchCache) Stats() CacheStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return CacheStats{Hits: m.hits, Misses: m.misses, Entries: len(m.fits)}
}

// Reset drops all entries and counters.
func (m *MatchCache) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fits = make(map[Bitmap]Fit)
	m.hits, m.misses = 0, 0
}
