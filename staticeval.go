// Package staticeval scores chess positions with a fast static evaluation.
//
// The score combines material, piece-square tables and pawn structure, and
// is normalized into (-1000, 1000) from White's perspective.
//
// Example usage:
//
//	ev, err := staticeval.New(
//	    staticeval.WithStrictValidation(),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ev.Close()
//
//	res, err := ev.Evaluate(ctx, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Score: %s (%s)\n", res.Pawns(), res.Favors())
package staticeval

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/discochess/staticeval/internal/board"
	"github.com/discochess/staticeval/internal/cache"
	"github.com/discochess/staticeval/internal/eval"
	"github.com/discochess/staticeval/internal/fen"
	"github.com/discochess/staticeval/internal/stats"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrClosed indicates the evaluator has been closed.
	ErrClosed = errors.New("staticeval: evaluator closed")

	// ErrInvalidPosition indicates a position failed strict validation.
	ErrInvalidPosition = errors.New("staticeval: invalid position")
)

// Evaluate returns the normalized score of position. Only the piece
// placement field is read; malformed input is scored on a best-effort basis.
func Evaluate(position string) int {
	return eval.Evaluate(position).Score
}

// Evaluator scores positions with an optional cache and strict validation.
// An Evaluator is safe for concurrent use by multiple goroutines.
type Evaluator struct {
	cache   cache.Backend
	stats   stats.Collector
	logger  *zap.Logger
	strict  bool
	workers int
	closed  atomic.Bool
}

// New creates a new Evaluator with the given options.
func New(opts ...Option) (*Evaluator, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.workers < 1 {
		return nil, fmt.Errorf("staticeval: workers must be positive, got %d", cfg.workers)
	}

	e := &Evaluator{
		cache:   cfg.cache,
		stats:   cfg.stats,
		logger:  cfg.logger,
		strict:  cfg.strict,
		workers: cfg.workers,
	}

	e.logger.Debug("evaluator initialized",
		zap.Bool("strict", e.strict),
		zap.Bool("cache", e.cache != nil),
		zap.Int("workers", e.workers),
	)

	return e, nil
}

// Evaluate scores a single position.
// With strict validation enabled, malformed positions return an error
// wrapping ErrInvalidPosition.
func (e *Evaluator) Evaluate(ctx context.Context, position string) (*Result, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if e.strict {
		if err := fen.Validate(position); err != nil {
			e.stats.IncCounter(stats.MetricInvalidPosition, 1)
			return nil, fmt.Errorf("%w: %w", ErrInvalidPosition, err)
		}
	}

	start := time.Now()
	b := e.breakdown(position)
	e.stats.ObserveHistogram(stats.MetricEvalSeconds, time.Since(start).Seconds())
	e.stats.IncCounter(stats.MetricEvaluations, 1)

	e.logger.Debug("evaluated",
		zap.String("position", position),
		zap.Int("score", b.Score),
		zap.Stringer("phase", b.Phase),
	)

	return newResult(position, b), nil
}

// EvaluateAll scores positions concurrently. Results are returned in input
// order. The first error cancels the remaining work.
func (e *Evaluator) EvaluateAll(ctx context.Context, positions []string) ([]*Result, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}

	results := make([]*Result, len(positions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, p := range positions {
		g.Go(func() error {
			res, err := e.Evaluate(ctx, p)
			if err != nil {
				return fmt.Errorf("position %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.stats.IncCounter(stats.MetricBatchPositions, int64(len(positions)))
	e.logger.Info("batch evaluated", zap.Int("positions", len(positions)))

	return results, nil
}

// Close releases the evaluator. Further calls return ErrClosed.
func (e *Evaluator) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	return nil
}

// CacheStats returns cache statistics, or zero stats without a cache.
func (e *Evaluator) CacheStats() cache.Stats {
	if e.cache == nil {
		return cache.Stats{}
	}
	return e.cache.Stats()
}

// breakdown evaluates position, consulting the cache by board segment.
func (e *Evaluator) breakdown(position string) eval.Breakdown {
	if e.cache == nil {
		return eval.Evaluate(position)
	}

	key := board.Segment(position)
	if b, ok := e.cache.Get(key); ok {
		return b
	}

	b := eval.Evaluate(position)
	e.cache.Set(key, b)
	return b
}
