package staticeval

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/discochess/staticeval/internal/cache"
	"github.com/discochess/staticeval/internal/stats"
)

// Option configures an Evaluator.
type Option interface {
	apply(*options)
}

// options holds the evaluator configuration.
type options struct {
	cache   cache.Backend
	stats   stats.Collector
	logger  *zap.Logger
	strict  bool
	workers int
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		stats:   stats.NewNoop(),
		logger:  zap.NewNop(),
		workers: runtime.GOMAXPROCS(0),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithCache sets a cache for evaluation results.
// If not set, every position is evaluated.
func WithCache(c cache.Backend) Option {
	return optionFunc(func(o *options) {
		o.cache = c
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

// WithStrictValidation rejects positions whose piece placement is malformed.
func WithStrictValidation() Option {
	return optionFunc(func(o *options) {
		o.strict = true
	})
}

// WithWorkers sets the concurrency of EvaluateAll.
// Default is GOMAXPROCS.
func WithWorkers(n int) Option {
	return optionFunc(func(o *options) {
		o.workers = n
	})
}
