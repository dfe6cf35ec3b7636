// Package documents stores certification proof files. Production uses S3;
// tests and development use the in-memory store.
package documents

import (
	"context"
	"io"
)

// Document is a stored proof file.
type Document struct {
	Key         string
	ContentType string
	Body        []byte
}

// Store abstracts the object storage backing proof files. Keys are
// caller-assigned (certification IDs plus a file extension).
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	Get(ctx context.Context, key string) (*Document, error)
	Delete(ctx context.Context, key string) error
}
