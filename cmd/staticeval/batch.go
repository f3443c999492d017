package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/staticeval"
	"github.com/discochess/staticeval/internal/analysis"
	"github.com/discochess/staticeval/internal/posfile"
	"github.com/discochess/staticeval/internal/source"
	"github.com/discochess/staticeval/internal/source/sourceuri"
	"github.com/discochess/staticeval/internal/stats"
	"github.com/discochess/staticeval/internal/stats/logger"
	promstats "github.com/discochess/staticeval/internal/stats/prometheus"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score every position in a position file",
	Long: `Score every position in a position file.

The source holds one position per line, either as a FEN/EPD line or as a
Lichess evaluation record. Files ending in .zst or .gz are decompressed.
Sources may be local paths, s3://bucket/key or gs://bucket/object.

Output is one "score<TAB>fen" line per position, in input order.

Examples:
  # Local file
  staticeval batch --source positions.epd

  # Lichess evaluations from S3, with a score summary
  staticeval batch --source s3://my-bucket/lichess_db_eval.jsonl.zst --summary`,
	RunE: runBatch,
}

var (
	batchSource  string
	batchWorkers int
	showSummary  bool
	dumpMetrics  bool
)

func init() {
	batchCmd.Flags().StringVar(&batchSource, "source", "", "position file path or s3:// / gs:// URI")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", runtime.GOMAXPROCS(0), "number of parallel workers")
	batchCmd.Flags().BoolVar(&showSummary, "summary", false, "print score statistics to stderr")
	batchCmd.Flags().BoolVar(&dumpMetrics, "metrics", false, "print prometheus metrics to stderr")
	_ = batchCmd.MarkFlagRequired("source")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	var (
		collector stats.Collector = logger.New(log.Named("stats"))
		registry  *prometheus.Registry
	)
	if dumpMetrics {
		registry = prometheus.NewRegistry()
		collector = promstats.New(registry)
	}

	ev, err := newEvaluator(log, collector, staticeval.WithWorkers(batchWorkers))
	if err != nil {
		return err
	}
	defer ev.Close()

	positions, err := readPositions(cmd, log, batchSource)
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := ev.EvaluateAll(ctx, posfile.FENs(positions))
	if err != nil {
		return fmt.Errorf("evaluating: %w", err)
	}
	log.Info("batch done",
		zap.Int("positions", len(results)),
		zap.String("elapsed", formatDuration(time.Since(start))),
	)

	out := cmd.OutOrStdout()
	scores := make([]float64, len(results))
	for i, res := range results {
		fmt.Fprintf(out, "%d\t%s\n", res.Score, res.Position)
		scores[i] = float64(res.Score)
	}

	if showSummary {
		printSummary(cmd.ErrOrStderr(), analysis.Summarize(scores))
	}
	if registry != nil {
		if err := writeMetrics(cmd.ErrOrStderr(), registry); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

// readPositions reads every record in uri, logging and skipping malformed
// lines.
func readPositions(cmd *cobra.Command, log *zap.Logger, uri string) ([]posfile.Record, error) {
	src, name, err := sourceuri.Resolve(cmd.Context(), uri)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return readRecords(cmd.Context(), log, src, name)
}

func readRecords(ctx context.Context, log *zap.Logger, src source.Source, name string) ([]posfile.Record, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()

	var (
		records []posfile.Record
		skipped int
		read    atomic.Int64
	)
	err = posfile.Scan(newProgressReader(rc, &read),
		func(r posfile.Record) error {
			records = append(records, r)
			return nil
		},
		func(line int, err error) error {
			skipped++
			log.Warn("skipping line", zap.Int("line", line), zap.Error(err))
			return nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	log.Info("positions read",
		zap.String("source", name),
		zap.Int("positions", len(records)),
		zap.Int("skipped", skipped),
		zap.String("bytes", formatBytes(read.Load())),
	)
	return records, nil
}

func printSummary(w io.Writer, s analysis.Summary) {
	fmt.Fprintf(w, "Positions: %d\n", s.Count)
	if s.Count == 0 {
		return
	}
	fmt.Fprintf(w, "Mean:      %.1f\n", s.Mean)
	fmt.Fprintf(w, "StdDev:    %.1f\n", s.StdDev)
	fmt.Fprintf(w, "Min:       %.0f\n", s.Min)
	fmt.Fprintf(w, "Median:    %.0f\n", s.Median)
	fmt.Fprintf(w, "P90:       %.0f\n", s.P90)
	fmt.Fprintf(w, "Max:       %.0f\n", s.Max)
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
