// Package cache defines caching of evaluation results keyed by board
// segment.
package cache

import "github.com/discochess/staticeval/internal/eval"

// Backend stores evaluation breakdowns.
// Implementations must be safe for concurrent use.
type Backend interface {
	// Get retrieves a cached breakdown.
	Get(key string) (eval.Breakdown, bool)

	// Set stores a breakdown.
	Set(key string, b eval.Breakdown)

	// Stats returns cache statistics.
	Stats() Stats
}

// Strategy defines an eviction policy.
type Strategy interface {
	Get(key string) (eval.Breakdown, bool)
	Add(key string, value eval.Breakdown) bool
	Len() int
}

// Stats contains cache statistics.
type Stats struct {
	Hits   int64
	Misses int64
	Size   int // Current number of entries
}

// HitRate returns the cache hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}
