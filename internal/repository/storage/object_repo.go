package storage

import (
	"context"
	"io"
	"time"
)

// ObjectRepository defines the interface for artifact storage operations
// (generated report PDFs, budget icon images). Objects are private;
// download access goes through short-lived presigned URLs.
type ObjectRepository interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}
