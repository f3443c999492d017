package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/staticeval"
	"github.com/discochess/staticeval/internal/cache/memory"
	"github.com/discochess/staticeval/internal/stats"
)

var (
	// Global flags.
	verbose   bool
	cacheSize int
	strict    bool
)

var rootCmd = &cobra.Command{
	Use:   "staticeval",
	Short: "Static evaluation of chess positions",
	Long: `Staticeval scores chess positions without searching.

The score sums material, piece-square bonuses and a doubled pawn penalty,
then squashes the total into (-1000, 1000). Positive scores favor White.

Examples:
  # Score a position
  staticeval eval "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"

  # Score every position in a file
  staticeval batch --source positions.epd

  # Score every ply of a game
  staticeval game games.pgn`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().IntVar(&cacheSize, "cache-size", 0, "number of board segments to cache (0 disables)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "reject malformed positions")
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

// newEvaluator builds an evaluator from the global flags.
func newEvaluator(log *zap.Logger, collector stats.Collector, opts ...staticeval.Option) (*staticeval.Evaluator, error) {
	opts = append(opts,
		staticeval.WithLogger(log),
		staticeval.WithStats(collector),
	)
	if cacheSize > 0 {
		c, err := memory.NewLRU(cacheSize, collector)
		if err != nil {
			return nil, fmt.Errorf("creating cache: %w", err)
		}
		opts = append(opts, staticeval.WithCache(c))
	}
	if strict {
		opts = append(opts, staticeval.WithStrictValidation())
	}

	ev, err := staticeval.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating evaluator: %w", err)
	}
	return ev, nil
}
