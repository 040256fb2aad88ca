package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/wcanalyzer/internal/config"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStorage(t.TempDir())

	require.NoError(t, s.UploadObject(ctx, "reports/2025/sim.csv", []byte("Metric,Actual,Simulated\n"), "text/csv"))
	require.NoError(t, s.UploadObject(ctx, "batch/summary.csv", []byte("a,b\n"), "text/csv"))

	data, err := s.GetObject(ctx, "reports/2025/sim.csv")
	require.NoError(t, err)
	assert.Equal(t, "Metric,Actual,Simulated\n", string(data))

	list, err := s.ListObjects(ctx, "reports/")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "reports/2025/sim.csv", list[0].Key)
	assert.Equal(t, int64(24), list[0].Size)

	all, err := s.ListObjects(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = s.GetObject(ctx, "reports/missing.csv")
	assert.True(t, errors.Is(err, ErrObjectNotFound))
}

func TestLocalStorageRejectsEscapes(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStorage(root)

	require.NoError(t, s.UploadObject(context.Background(), "../../outside.csv", []byte("x"), "text/csv"))
	list, err := s.ListObjects(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "outside.csv", list[0].Key)

	assert.Error(t, s.UploadObject(context.Background(), "", []byte("x"), "text/csv"))
}

func TestNormalizeEndpoint(t *testing.T) {
	host, secure := normalizeEndpoint("https://s3.example.com", false)
	assert.Equal(t, "s3.example.com", host)
	assert.True(t, secure)

	host, secure = normalizeEndpoint("http://localhost:9000", true)
	assert.Equal(t, "localhost:9000", host)
	assert.False(t, secure)

	host, secure = normalizeEndpoint("minio:9000", true)
	assert.Equal(t, "minio:9000", host)
	assert.True(t, secure)
}

func TestNewMinioClientValidation(t *testing.T) {
	ctx := context.Background()
	_, err := NewMinioClient(ctx, config.StorageConfig{})
	assert.Error(t, err)

	_, err = NewMinioClient(ctx, config.StorageConfig{Endpoint: "localhost:9000"})
	assert.Error(t, err)

	_, err = NewMinioClient(ctx, config.StorageConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"})
	assert.Error(t, err)
}
