// Package gcssource reads position files from Google Cloud Storage.
package gcssource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/discochess/staticeval/internal/source"
)

// Compile-time check that Source implements source.Source.
var _ source.Source = (*Source)(nil)

// Source reads objects from a single GCS bucket.
type Source struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
}

// Option configures a Source.
type Option func(*Source)

// New creates a new GCS source using application default credentials.
// The bucket must already exist.
func New(ctx context.Context, bucketName string, opts ...Option) (*Source, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}

	s := &Source{
		client: client,
		bucket: client.Bucket(bucketName),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// WithPrefix sets a key prefix for all operations.
func WithPrefix(prefix string) Option {
	return func(s *Source) {
		s.prefix = strings.TrimSuffix(prefix, "/")
		if s.prefix != "" {
			s.prefix += "/"
		}
	}
}

// Open reads and decompresses the named object.
func (s *Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	reader, err := s.bucket.Object(s.key(name)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, source.ErrNotFound
		}
		return nil, fmt.Errorf("creating reader for %s: %w", s.key(name), err)
	}

	return source.Decompress(name, reader)
}

// Close releases resources.
func (s *Source) Close() error {
	return s.client.Close()
}

func (s *Source) key(name string) string {
	return s.prefix + strings.TrimPrefix(name, "/")
}
