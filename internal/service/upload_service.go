package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/atelier-vn/shop-api/internal/domain"
	"github.com/atelier-vn/shop-api/internal/storage"
)

// ErrUnsupportedImageType is returned when an upload is not an image
var ErrUnsupportedImageType = fmt.Errorf("unsupported image type")

// UploadService stores product and invoice item images. The returned path is
// what callers put into the image lists of those records.
type UploadService struct {
	storage storage.Storage
	logger  *zap.Logger
}

func NewUploadService(store storage.Storage, logger *zap.Logger) *UploadService {
	return &UploadService{
		storage: store,
		logger:  logger,
	}
}

// UploadImage stores an image and returns its storage path
func (s *UploadService) UploadImage(ctx context.Context, filename, contentType string, data io.Reader) (*domain.UploadResultDTO, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrUnsupportedImageType
	}

	path, size, err := s.storage.Upload(ctx, filename, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	s.logger.Info("image uploaded",
		zap.String("path", path),
		zap.String("content_type", contentType),
		zap.Int64("size", size),
	)

	return &domain.UploadResultDTO{
		Path:        path,
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
	}, nil
}

// DownloadImage streams a stored image back to the caller
func (s *UploadService) DownloadImage(ctx context.Context, path string) (io.ReadCloser, error) {
	reader, err := s.storage.Download(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	return reader, nil
}
