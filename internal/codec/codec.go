// Package codec provides compression and decompression for position files.
package codec

import (
	"io"
	"path"
	"strings"
)

// Codec provides compression and decompression functionality.
type Codec interface {
	// Reader wraps r to decompress data read from it.
	Reader(r io.Reader) (io.ReadCloser, error)
	// Writer wraps w to compress data written to it.
	Writer(w io.Writer) (io.WriteCloser, error)
	// Extension returns the file extension without dot (e.g., "zst", "gz").
	// Returns empty string for no compression.
	Extension() string
}

// ForName picks the codec matching the extension of name: zstd for
// ".zst", gzip for ".gz", and no compression otherwise.
func ForName(name string) Codec {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(name), ".")) {
	case "zst", "zstd":
		return Zstd()
	case "gz", "gzip":
		return Gzip()
	default:
		return None()
	}
}
