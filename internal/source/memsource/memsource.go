// Package memsource provides an in-memory source for testing.
package memsource

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/discochess/staticeval/internal/source"
)

// Compile-time check that Source implements source.Source.
var _ source.Source = (*Source)(nil)

// Source is an in-memory source for testing.
type Source struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// New creates an empty in-memory source.
func New() *Source {
	return &Source{objects: make(map[string][]byte)}
}

// Set stores data under name. Data is stored as given, so a name ending in
// ".zst" or ".gz" must hold compressed bytes.
func (s *Source) Set(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = bytes.Clone(data)
}

// Open returns the decompressed content stored under name.
func (s *Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, ok := s.objects[name]
	s.mu.RUnlock()
	if !ok {
		return nil, source.ErrNotFound
	}
	return source.Decompress(name, io.NopCloser(bytes.NewReader(data)))
}

// Close is a no-op for the memory source.
func (s *Source) Close() error {
	return nil
}
