// Package lru implements an LRU cache eviction strategy.
package lru

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/discochess/staticeval/internal/cache"
	"github.com/discochess/staticeval/internal/eval"
)

// Compile-time check that Strategy implements cache.Strategy.
var _ cache.Strategy = (*Strategy)(nil)

// Strategy implements LRU eviction.
type Strategy struct {
	cache *lru.Cache[string, eval.Breakdown]
}

// New creates a new LRU strategy with the given capacity.
func New(capacity int) (*Strategy, error) {
	c, err := lru.New[string, eval.Breakdown](capacity)
	if err != nil {
		return nil, err
	}
	return &Strategy{cache: c}, nil
}

// Get retrieves a value by key, marking it recently used.
func (s *Strategy) Get(key string) (eval.Breakdown, bool) {
	return s.cache.Get(key)
}

// Add adds a value to the cache. It reports whether an entry was evicted.
func (s *Strategy) Add(key string, value eval.Breakdown) bool {
	return s.cache.Add(key, value)
}

// Len returns the number of items in the cache.
func (s *Strategy) Len() int {
	return s.cache.Len()
}
