package connections

import (
	"edgeflow/diagram"
	"edgeflow/geometry"
	"fmt"
	"sync"
	"sync/atomic"
)

// RouteKey captures every input a route depends on. Equal keys always plan
// to equal routes, so caching never changes what is drawn.
type RouteKey struct {
	SourceBox geometry.Box
	TargetBox geometry.Box
	Source    diagram.ConnectionPoint
	Target    diagram.ConnectionPoint
	Mode      diagram.RoutingMode
	Ratio     float64
	Radius    float64
}

// KeyFor builds the cache key for an edge between two boxes. Non-finite
// ratios and radii are folded to the values the planner substitutes, as
// NaN never compares equal as a map key.
func KeyFor(src, dst geometry.Box, e diagram.Edge) RouteKey {
	key := RouteKey{
		SourceBox: src,
		TargetBox: dst,
		Source:    e.Source,
		Target:    e.Target,
		Mode:      e.Mode(),
		Ratio:     e.Ratio(),
		Radius:    e.Radius(),
	}
	if !geometry.Finite(key.Ratio) {
		key.Ratio = diagram.DefaultMidpointRatio
	}
	if !geometry.Finite(key.Radius) {
		key.Radius = 0
	}
	return key
}

// RouteCache stores previously planned routes for reuse. Cached routes
// share their slices with callers and must be treated as read-only.
type RouteCache struct {
	mu        sync.RWMutex
	cache     map[RouteKey]Route
	maxSize   int
	hits      int64 // Use atomic operations
	misses    int64 // Use atomic operations
	evictions int64 // Use atomic operations
}

// NewRouteCache creates a cache holding at most maxSize routes.
// A non-positive size means unbounded.
func NewRouteCache(maxSize int) *RouteCache {
	return &RouteCache{
		cache:   make(map[RouteKey]Route),
		maxSize: maxSize,
	}
}

// Get retrieves a route if one was stored under key.
func (rc *RouteCache) Get(key RouteKey) (Route, bool) {
	rc.mu.RLock()
	route, found := rc.cache[key]
	rc.mu.RUnlock()

	if found {
		atomic.AddInt64(&rc.hits, 1)
	} else {
		atomic.AddInt64(&rc.misses, 1)
	}
	return route, found
}

// Put stores a route.
func (rc *RouteCache) Put(key RouteKey, route Route) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if _, exists := rc.cache[key]; !exists && rc.maxSize > 0 && len(rc.cache) >= rc.maxSize {
		// Evict an arbitrary entry; during a drag only the dragged edge's
		// key changes, so any survivor is as good as another.
		for k := range rc.cache {
			delete(rc.cache, k)
			atomic.AddInt64(&rc.evictions, 1)
			break
		}
	}
	rc.cache[key] = route
}

// Clear removes all entries and resets the counters.
func (rc *RouteCache) Clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.cache = make(map[RouteKey]Route)
	atomic.StoreInt64(&rc.hits, 0)
	atomic.StoreInt64(&rc.misses, 0)
	atomic.StoreInt64(&rc.evictions, 0)
}

// Stats returns cache statistics
func (rc *RouteCache) Stats() (hits, misses, evictions, size int) {
	rc.mu.RLock()
	size = len(rc.cache)
	rc.mu.RUnlock()

	hits = int(atomic.LoadInt64(&rc.hits))
	misses = int(atomic.LoadInt64(&rc.misses))
	evictions = int(atomic.LoadInt64(&rc.evictions))
	return hits, misses, evictions, size
}

// String returns a string representation of cache statistics
func (rc *RouteCache) String() string {
	hits, misses, evictions, size := rc.Stats()
	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return fmt.Sprintf("RouteCache[size=%d/%d, hits=%d, misses=%d, hitRate=%.1f%%, evictions=%d]",
		size, rc.maxSize, hits, misses, hitRate, evictions)
}
