// Package source defines the backend interface for reading position files
// from local disk or object storage.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/discochess/staticeval/internal/codec"
)

// ErrNotFound is returned when a position file does not exist.
var ErrNotFound = errors.New("source: object not found")

// ErrInvalidURI is returned by Parse for unusable locations.
var ErrInvalidURI = errors.New("source: invalid uri")

// Source defines the interface for position file backends.
type Source interface {
	// Open returns the decompressed content of the named object.
	// The codec is chosen from the name's extension.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Close releases any resources held by the source.
	Close() error
}

// Schemes understood by Parse.
const (
	SchemeFile = "file"
	SchemeS3   = "s3"
	SchemeGCS  = "gs"
)

// Location identifies a position file.
type Location struct {
	// Scheme is one of SchemeFile, SchemeS3 or SchemeGCS.
	Scheme string

	// Bucket is the bucket name, or the directory for local files.
	Bucket string

	// Name is the object key, or the file name for local files.
	Name string
}

// Parse splits uri into a Location. "s3://bucket/key" and "gs://bucket/key"
// select object storage; anything else is a local path, optionally
// prefixed with "file://".
func Parse(uri string) (Location, error) {
	for _, scheme := range []string{SchemeS3, SchemeGCS} {
		rest, ok := strings.CutPrefix(uri, scheme+"://")
		if !ok {
			continue
		}
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket == "" || key == "" {
			return Location{}, fmt.Errorf("%w: %q needs a bucket and a key", ErrInvalidURI, uri)
		}
		return Location{Scheme: scheme, Bucket: bucket, Name: key}, nil
	}

	path := strings.TrimPrefix(uri, SchemeFile+"://")
	if path == "" || strings.HasSuffix(path, "/") {
		return Location{}, fmt.Errorf("%w: %q is not a file", ErrInvalidURI, uri)
	}
	return Location{
		Scheme: SchemeFile,
		Bucket: filepath.Dir(path),
		Name:   filepath.Base(path),
	}, nil
}

// Decompress wraps rc with the codec matching name. Closing the returned
// reader closes rc as well.
func Decompress(name string, rc io.ReadCloser) (io.ReadCloser, error) {
	r, err := codec.ForName(name).Reader(rc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("creating decompressor: %w", err)
	}
	if r == rc {
		return rc, nil
	}
	return &stackedCloser{Reader: r, closers: []io.Closer{r, rc}}, nil
}

type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
