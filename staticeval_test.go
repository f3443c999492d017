package staticeval

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/discochess/staticeval/internal/cache/memory"
	"github.com/discochess/staticeval/internal/fen"
	promstats "github.com/discochess/staticeval/internal/stats/prometheus"
)

const (
	startFEN  = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	afterE4   = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	kpEndgame = "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		position string
		want     int
	}{
		{"start", startFEN, 0},
		{"after e4", afterE4, 40},
		{"king and pawn", kpEndgame, 80},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.position); got != tt.want {
				t.Errorf("Evaluate(%q) = %d, want %d", tt.position, got, tt.want)
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	ev, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ev.Close()

	if ev.workers < 1 {
		t.Errorf("workers = %d, want >= 1", ev.workers)
	}
	if got := ev.CacheStats(); got.Hits != 0 || got.Misses != 0 || got.Size != 0 {
		t.Errorf("CacheStats() = %+v, want zero", got)
	}
}

func TestNew_InvalidWorkers(t *testing.T) {
	if _, err := New(WithWorkers(0)); err == nil {
		t.Error("New(WithWorkers(0)) error = nil, want error")
	}
}

func TestEvaluator_Evaluate(t *testing.T) {
	ev, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ev.Close()

	res, err := ev.Evaluate(context.Background(), kpEndgame)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	want := Result{
		Position:      kpEndgame,
		Score:         80,
		Raw:           80,
		Material:      100,
		Positional:    -20,
		PawnStructure: 0,
		Phase:         "endgame",
	}
	if *res != want {
		t.Errorf("Evaluate() = %+v, want %+v", *res, want)
	}
}

func TestEvaluator_Evaluate_Strict(t *testing.T) {
	ev, err := New(WithStrictValidation())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ev.Close()

	_, err = ev.Evaluate(context.Background(), "rnbqkbnr/ppppXppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("Evaluate() error = %v, want ErrInvalidPosition", err)
	}
	if !errors.Is(err, fen.ErrInvalidFEN) {
		t.Errorf("Evaluate() error = %v, want wrapped fen.ErrInvalidFEN", err)
	}

	if _, err := ev.Evaluate(context.Background(), startFEN); err != nil {
		t.Errorf("Evaluate(start) error = %v", err)
	}
}

func TestEvaluator_Evaluate_Permissive(t *testing.T) {
	ev, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ev.Close()

	res, err := ev.Evaluate(context.Background(), "not a position")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if res.Score != Evaluate("not a position") {
		t.Errorf("Score = %d, want %d", res.Score, Evaluate("not a position"))
	}
}

func TestEvaluator_Evaluate_CanceledContext(t *testing.T) {
	ev, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ev.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ev.Evaluate(ctx, startFEN); !errors.Is(err, context.Canceled) {
		t.Errorf("Evaluate() error = %v, want context.Canceled", err)
	}
}

func TestEvaluator_Cache(t *testing.T) {
	c, err := memory.NewLRU(16, nil)
	if err != nil {
		t.Fatalf("NewLRU() error = %v", err)
	}

	ev, err := New(WithCache(c))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ev.Close()

	ctx := context.Background()
	if _, err := ev.Evaluate(ctx, afterE4); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	// Same placement, different side to move and clocks.
	res, err := ev.Evaluate(ctx, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w - - 5 9")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if res.Score != 40 {
		t.Errorf("Score = %d, want 40", res.Score)
	}

	got := ev.CacheStats()
	if got.Hits != 1 || got.Misses != 1 || got.Size != 1 {
		t.Errorf("CacheStats() = %+v, want 1 hit, 1 miss, size 1", got)
	}
}

func TestEvaluator_Stats(t *testing.T) {
	reg := prometheus.NewRegistry()
	ev, err := New(
		WithStats(promstats.New(reg)),
		WithStrictValidation(),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ev.Close()

	ctx := context.Background()
	_, _ = ev.Evaluate(ctx, startFEN)
	_, _ = ev.Evaluate(ctx, afterE4)
	_, _ = ev.Evaluate(ctx, "8/8/8")

	if n, err := testutil.GatherAndCount(reg, "staticeval_evaluations_total"); err != nil || n != 1 {
		t.Errorf("evaluations series = %d, %v; want 1", n, err)
	}
	if n, err := testutil.GatherAndCount(reg, "staticeval_invalid_positions_total"); err != nil || n != 1 {
		t.Errorf("invalid series = %d, %v; want 1", n, err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == "staticeval_evaluations_total" {
			if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 2 {
				t.Errorf("evaluations = %v, want 2", got)
			}
		}
		if mf.GetName() == "staticeval_eval_seconds" {
			if got := mf.GetMetric()[0].GetHistogram().GetSampleCount(); got != 2 {
				t.Errorf("latency samples = %d, want 2", got)
			}
		}
	}
}

func TestEvaluator_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ev, err := New(WithLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ev.Close()

	if _, err := ev.Evaluate(context.Background(), afterE4); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	entries := logs.FilterMessage("evaluated").All()
	if len(entries) != 1 {
		t.Fatalf("got %d evaluated entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["score"] != int64(40) {
		t.Errorf("score field = %v, want 40", fields["score"])
	}
	if fields["phase"] != "opening" {
		t.Errorf("phase field = %v, want opening", fields["phase"])
	}
}

func TestEvaluator_EvaluateAll(t *testing.T) {
	ev, err := New(WithWorkers(2))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ev.Close()

	positions := []string{startFEN, afterE4, kpEndgame, startFEN}
	results, err := ev.EvaluateAll(context.Background(), positions)
	if err != nil {
		t.Fatalf("EvaluateAll() error = %v", err)
	}

	want := []int{0, 40, 80, 0}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i, res := range results {
		if res.Position != positions[i] {
			t.Errorf("results[%d].Position = %q, want %q", i, res.Position, positions[i])
		}
		if res.Score != want[i] {
			t.Errorf("results[%d].Score = %d, want %d", i, res.Score, want[i])
		}
	}
}

func TestEvaluator_EvaluateAll_Error(t *testing.T) {
	ev, err := New(WithStrictValidation())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ev.Close()

	_, err = ev.EvaluateAll(context.Background(), []string{startFEN, "bogus"})
	if !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("EvaluateAll() error = %v, want ErrInvalidPosition", err)
	}
}

func TestEvaluator_EvaluateAll_Empty(t *testing.T) {
	ev, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ev.Close()

	results, err := ev.EvaluateAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("EvaluateAll() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestEvaluator_Close(t *testing.T) {
	ev, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := ev.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := ev.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close() error = %v, want ErrClosed", err)
	}
	if _, err := ev.Evaluate(context.Background(), startFEN); !errors.Is(err, ErrClosed) {
		t.Errorf("Evaluate() after Close error = %v, want ErrClosed", err)
	}
	if _, err := ev.EvaluateAll(context.Background(), []string{startFEN}); !errors.Is(err, ErrClosed) {
		t.Errorf("EvaluateAll() after Close error = %v, want ErrClosed", err)
	}
}

func BenchmarkEvaluator_Evaluate(b *testing.B) {
	ev, err := New()
	if err != nil {
		b.Fatal(err)
	}
	defer ev.Close()

	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		_, _ = ev.Evaluate(ctx, afterE4)
	}
}

func BenchmarkEvaluator_EvaluateCached(b *testing.B) {
	c, err := memory.NewLRU(1024, nil)
	if err != nil {
		b.Fatal(err)
	}
	ev, err := New(WithCache(c))
	if err != nil {
		b.Fatal(err)
	}
	defer ev.Close()

	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		_, _ = ev.Evaluate(ctx, afterE4)
	}
}
