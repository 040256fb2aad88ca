package storage

import (
	"context"
	"errors"

	"github.com/andresuchdata/wcanalyzer/internal/config"
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectInfo represents metadata for a stored report.
type ObjectInfo struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

// ObjectStorage captures the minimal S3-compatible operations report export needs.
type ObjectStorage interface {
	UploadObject(ctx context.Context, key string, data []byte, contentType string) error
	GetObject(ctx context.Context, key string) ([]byte, error)
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
}

// New returns the configured object storage: MinIO when enabled, otherwise
// the local report directory.
func New(ctx context.Context, cfg config.StorageConfig, localDir string) (ObjectStorage, error) {
	if !cfg.Enabled {
		return NewLocalStorage(localDir), nil
	}
	return NewMinioClient(ctx, cfg)
}
