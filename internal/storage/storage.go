package storage

import (
	"context"
	"io"
	"time"
)

// Default expiry duration for presigned download URLs. Uploaded images are
// referenced by URL from stored records, so the links have to outlive any
// session by a wide margin.
const DefaultDownloadURLExpiry = 7 * 24 * time.Hour

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// Upload stores an object and returns a durable URL for reading it.
	Upload(ctx context.Context, objectKey, contentType string, size int64, body io.Reader) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}
