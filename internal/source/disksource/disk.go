// Package disksource reads position files from a local directory.
package disksource

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/discochess/staticeval/internal/source"
)

// Compile-time check that Source implements source.Source.
var _ source.Source = (*Source)(nil)

// Source reads files below a root directory.
type Source struct {
	root string
}

// New creates a new disk source rooted at the given directory.
// The directory must exist.
func New(root string) (*Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}
	return &Source{root: root}, nil
}

// Open opens and decompresses the named file.
func (s *Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	// Check for cancellation before starting I/O.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(name)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, source.ErrNotFound
		}
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	return source.Decompress(name, f)
}

// Close releases any resources held by the source.
func (s *Source) Close() error {
	return nil
}
