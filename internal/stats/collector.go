// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the library.
const (
	// Evaluator metrics.
	MetricEvaluations     = "staticeval_evaluations_total"
	MetricInvalidPosition = "staticeval_invalid_positions_total"
	MetricEvalSeconds     = "staticeval_eval_seconds"

	// Batch metrics.
	MetricBatchPositions = "staticeval_batch_positions_total"

	// Cache metrics.
	MetricCacheHits   = "staticeval_cache_hits_total"
	MetricCacheMisses = "staticeval_cache_misses_total"
	MetricCacheSize   = "staticeval_cache_size"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
