// Package memory implements an in-memory cache backend.
package memory

import (
	"sync/atomic"

	"github.com/discochess/staticeval/internal/cache"
	"github.com/discochess/staticeval/internal/cache/lru"
	"github.com/discochess/staticeval/internal/eval"
	"github.com/discochess/staticeval/internal/stats"
)

// Compile-time check that Backend implements cache.Backend.
var _ cache.Backend = (*Backend)(nil)

// Backend is a thread-safe in-memory cache backend.
type Backend struct {
	strategy  cache.Strategy
	collector stats.Collector

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a new memory backend with the given eviction strategy.
// The collector is optional; if nil, a no-op collector is used.
func New(strategy cache.Strategy, collector stats.Collector) *Backend {
	if collector == nil {
		collector = stats.NewNoop()
	}
	return &Backend{
		strategy:  strategy,
		collector: collector,
	}
}

// Get retrieves a breakdown from the cache.
func (b *Backend) Get(key string) (eval.Breakdown, bool) {
	val, ok := b.strategy.Get(key)
	if ok {
		b.hits.Add(1)
		b.collector.IncCounter(stats.MetricCacheHits, 1)
		return val, true
	}
	b.misses.Add(1)
	b.collector.IncCounter(stats.MetricCacheMisses, 1)
	return eval.Breakdown{}, false
}

// Set stores a breakdown in the cache.
func (b *Backend) Set(key string, bd eval.Breakdown) {
	b.strategy.Add(key, bd)
	b.collector.SetGauge(stats.MetricCacheSize, int64(b.strategy.Len()))
}

// Stats returns current cache statistics.
func (b *Backend) Stats() cache.Stats {
	return cache.Stats{
		Hits:   b.hits.Load(),
		Misses: b.misses.Load(),
		Size:   b.strategy.Len(),
	}
}

// NewLRU is a shorthand for a memory backend with LRU eviction.
func NewLRU(capacity int, collector stats.Collector) (*Backend, error) {
	strategy, err := lru.New(capacity)
	if err != nil {
		return nil, err
	}
	return New(strategy, collector), nil
}
