// Package storage uploads user media to object storage and hands back a URL
// that notes and profiles can reference.
package storage

import (
	"context"
	"io"
)

// Uploader stores size bytes from r under path and returns a download URL.
type Uploader interface {
	Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error)
}
