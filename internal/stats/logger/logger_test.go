package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/discochess/staticeval/internal/stats"
)

func TestCollector_LogsMetrics(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := New(zap.New(core))

	c.IncCounter(stats.MetricEvaluations, 2)
	c.SetGauge(stats.MetricCacheSize, 10)
	c.ObserveHistogram(stats.MetricEvalSeconds, 0.5)

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("logged %d entries, want 3", len(entries))
	}

	wantMessages := []string{"counter", "gauge", "histogram"}
	for i, e := range entries {
		if e.Message != wantMessages[i] {
			t.Errorf("entry %d message = %q, want %q", i, e.Message, wantMessages[i])
		}
		if e.Level != zapcore.DebugLevel {
			t.Errorf("entry %d level = %v, want debug", i, e.Level)
		}
	}

	if got := entries[0].ContextMap()["metric"]; got != stats.MetricEvaluations {
		t.Errorf("metric = %v, want %q", got, stats.MetricEvaluations)
	}
	if got := entries[0].ContextMap()["delta"]; got != int64(2) {
		t.Errorf("delta = %v, want 2", got)
	}
}

func TestNewAtLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	c := NewAtLevel(zap.New(core), zapcore.InfoLevel)

	c.IncCounter("x", 1)

	if logs.Len() != 1 {
		t.Fatalf("logged %d entries, want 1", logs.Len())
	}
	if logs.All()[0].Level != zapcore.InfoLevel {
		t.Errorf("level = %v, want info", logs.All()[0].Level)
	}
}

func TestNew_NilLogger(t *testing.T) {
	c := New(nil)
	// Must not panic.
	c.IncCounter("x", 1)
	c.SetGauge("x", 1)
	c.ObserveHistogram("x", 1)
}
