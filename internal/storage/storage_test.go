package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atelier-vn/shop-api/internal/config"
	"github.com/atelier-vn/shop-api/internal/storage"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	path, size, err := s.Upload(ctx, "photo.jpg", "image/jpeg", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(len("fake image bytes")), size)
	assert.True(t, strings.HasSuffix(path, ".jpg"))

	reader, err := s.Download(ctx, path)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestLocalStorage_DownloadMissing(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Download(context.Background(), "aa/bb/unknown.jpg")
	assert.Error(t, err)
}

func TestLocalStorage_Delete(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	path, _, err := s.Upload(ctx, "photo.png", "image/png", strings.NewReader("bytes"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, path))

	_, err = s.Download(ctx, path)
	assert.Error(t, err)

	// deleting a missing path is not an error
	assert.NoError(t, s.Delete(ctx, path))
}

func TestNewStorage_Modes(t *testing.T) {
	logger := zap.NewNop()

	s, err := storage.NewStorage(&config.StorageConfig{Mode: "local", LocalBasePath: t.TempDir()}, logger)
	require.NoError(t, err)
	assert.NotNil(t, s)

	_, err = storage.NewStorage(&config.StorageConfig{Mode: "azure"}, logger)
	assert.Error(t, err)

	_, err = storage.NewStorage(&config.StorageConfig{Mode: "ftp"}, logger)
	assert.Error(t, err)
}
