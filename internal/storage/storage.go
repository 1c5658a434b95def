package storage

import (
	"context"
	"time"
)

// ObjectInfo represents metadata for a stored export artifact.
type ObjectInfo struct {
	Key  string
	Size int64
}

// ObjectStorage captures the minimal S3-compatible operations the export
// path needs: upload an artifact, list past artifacts, hand out a
// time-limited download link.
type ObjectStorage interface {
	UploadObject(ctx context.Context, key string, data []byte, contentType string) error
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
