// Package sourceuri opens position files from a URI, choosing the backend
// from its scheme.
package sourceuri

import (
	"context"
	"fmt"
	"io"

	"github.com/discochess/staticeval/internal/source"
	"github.com/discochess/staticeval/internal/source/disksource"
	"github.com/discochess/staticeval/internal/source/gcssource"
	"github.com/discochess/staticeval/internal/source/s3source"
)

// Open resolves uri to a backend and opens the object it names.
// Closing the returned reader also closes the backend.
func Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	src, name, err := Resolve(ctx, uri)
	if err != nil {
		return nil, err
	}

	rc, err := src.Open(ctx, name)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("opening %s: %w", uri, err)
	}
	return &readCloser{ReadCloser: rc, src: src}, nil
}

// Resolve returns the backend for uri and the object name within it.
// The caller must close the backend.
func Resolve(ctx context.Context, uri string) (source.Source, string, error) {
	loc, err := source.Parse(uri)
	if err != nil {
		return nil, "", err
	}

	src, err := newSource(ctx, loc)
	if err != nil {
		return nil, "", err
	}
	return src, loc.Name, nil
}

func newSource(ctx context.Context, loc source.Location) (source.Source, error) {
	switch loc.Scheme {
	case source.SchemeS3:
		return s3source.New(ctx, loc.Bucket)
	case source.SchemeGCS:
		return gcssource.New(ctx, loc.Bucket)
	default:
		return disksource.New(loc.Bucket)
	}
}

type readCloser struct {
	io.ReadCloser
	src source.Source
}

func (r *readCloser) Close() error {
	err := r.ReadCloser.Close()
	if cerr := r.src.Close(); err == nil {
		err = cerr
	}
	return err
}
