package ports

import (
	"context"
	"io"
)

// StoragePort สำหรับเก็บไฟล์ avatar (local disk หรือ S3-compatible)
type StoragePort interface {
	Upload(ctx context.Context, key string, content io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}
