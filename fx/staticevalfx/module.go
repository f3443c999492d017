// Package staticevalfx provides an fx module for a static evaluator.
package staticevalfx

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/staticeval"
	"github.com/discochess/staticeval/internal/cache/memory"
	"github.com/discochess/staticeval/internal/stats"
	"github.com/discochess/staticeval/internal/stats/logger"
	promstats "github.com/discochess/staticeval/internal/stats/prometheus"
)

// Config holds configuration for the evaluator.
type Config struct {
	// CacheSize is the number of board segments to cache.
	// Zero disables caching.
	CacheSize int

	// Strict rejects malformed positions.
	Strict bool

	// Workers bounds EvaluateAll concurrency.
	// Zero uses GOMAXPROCS.
	Workers int
}

// Module provides a *staticeval.Evaluator.
// Requires a Config and a *zap.Logger to be provided. When a
// prometheus.Registerer is also provided, metrics are exported there
// instead of being logged.
var Module = fx.Module("staticeval",
	fx.Provide(
		newStatsCollector,
		newEvaluator,
	),
)

// StatsParams holds dependencies for the stats collector.
type StatsParams struct {
	fx.In

	Logger     *zap.Logger
	Registerer prometheus.Registerer `optional:"true"`
}

func newStatsCollector(p StatsParams) stats.Collector {
	if p.Registerer != nil {
		return promstats.New(p.Registerer)
	}
	return logger.New(p.Logger.Named("staticeval.stats"))
}

// Params holds dependencies for creating the evaluator.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided evaluator.
type Result struct {
	fx.Out

	Evaluator *staticeval.Evaluator
}

func newEvaluator(p Params) (Result, error) {
	opts := []staticeval.Option{
		staticeval.WithStats(p.Collector),
		staticeval.WithLogger(p.Logger.Named("staticeval")),
	}

	if p.Config.CacheSize > 0 {
		c, err := memory.NewLRU(p.Config.CacheSize, p.Collector)
		if err != nil {
			return Result{}, err
		}
		opts = append(opts, staticeval.WithCache(c))
	}
	if p.Config.Strict {
		opts = append(opts, staticeval.WithStrictValidation())
	}
	if p.Config.Workers > 0 {
		opts = append(opts, staticeval.WithWorkers(p.Config.Workers))
	}

	ev, err := staticeval.New(opts...)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return ev.Close()
		},
	})

	return Result{Evaluator: ev}, nil
}
