package memsource

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/discochess/staticeval/internal/source"
)

func TestSource_SetOpen(t *testing.T) {
	s := New()
	data := []byte("4k3/8/8/8/8/8/8/4K3 w - - 0 1\n")
	s.Set("kings.fen", data)

	// Caller mutations must not leak into the source.
	data[0] = 'X'

	rc, err := s.Open(context.Background(), "kings.fen")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != "4k3/8/8/8/8/8/8/4K3 w - - 0 1\n" {
		t.Errorf("Open() content = %q", got)
	}
}

func TestSource_NotFound(t *testing.T) {
	s := New()
	if _, err := s.Open(context.Background(), "missing"); !errors.Is(err, source.ErrNotFound) {
		t.Errorf("Open() error = %v, want ErrNotFound", err)
	}
}
