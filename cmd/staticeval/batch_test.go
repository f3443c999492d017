package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/discochess/staticeval/internal/codec"
	"github.com/discochess/staticeval/internal/source"
	"github.com/discochess/staticeval/internal/source/memsource"
)

func compress(t *testing.T, c codec.Codec, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := c.Writer(&buf)
	if err != nil {
		t.Fatalf("Writer() error = %v", err)
	}
	if _, err := w.Write([]byte(data)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return buf.Bytes()
}

func TestReadRecords(t *testing.T) {
	src := memsource.New()
	src.Set("positions.epd", []byte(positionFile))
	src.Set("positions.epd.zst", compress(t, codec.Zstd(), positionFile))
	src.Set("positions.epd.gz", compress(t, codec.Gzip(), positionFile))

	for _, name := range []string{"positions.epd", "positions.epd.zst", "positions.epd.gz"} {
		t.Run(name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)

			records, err := readRecords(context.Background(), zap.New(core), src, name)
			if err != nil {
				t.Fatalf("readRecords() error = %v", err)
			}

			want := []string{startFEN, afterE4, "4k3/8/8/8/8/8/4P3/4K3 w - -"}
			if len(records) != len(want) {
				t.Fatalf("got %d records, want %d", len(records), len(want))
			}
			for i, r := range records {
				if r.FEN != want[i] {
					t.Errorf("records[%d].FEN = %q, want %q", i, r.FEN, want[i])
				}
			}
			if !records[2].HasEngineScore() || *records[2].CP != 50 {
				t.Errorf("records[2].CP = %v, want 50", records[2].CP)
			}

			if n := logs.FilterMessage("skipping line").Len(); n != 1 {
				t.Errorf("got %d skip warnings, want 1", n)
			}
			read := logs.FilterMessage("positions read").All()
			if len(read) != 1 || read[0].ContextMap()["skipped"] != int64(1) {
				t.Errorf("positions read entries = %v", read)
			}
		})
	}
}

func TestReadRecords_NotFound(t *testing.T) {
	_, err := readRecords(context.Background(), zap.NewNop(), memsource.New(), "missing.epd")
	if !errors.Is(err, source.ErrNotFound) {
		t.Errorf("readRecords() error = %v, want ErrNotFound", err)
	}
}
