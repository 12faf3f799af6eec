package handler

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/atelier-vn/shop-api/internal/config"
	"github.com/atelier-vn/shop-api/internal/domain"
	"github.com/atelier-vn/shop-api/internal/service"
)

type UploadHandler struct {
	uploadService *service.UploadService
	maxBytes      int64
	logger        *zap.Logger
}

func NewUploadHandler(uploadService *service.UploadService, cfg *config.StorageConfig, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		maxBytes:      cfg.MaxUploadSizeMB * 1024 * 1024,
		logger:        logger,
	}
}

// Upload godoc
// @Summary Upload an image
// @Description Accepts a multipart form with a "file" field, image content types only
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 201 {object} domain.UploadResultDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 413 {object} domain.ErrorResponse "File too large"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /uploads [post]
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondJSON(w, http.StatusRequestEntityTooLarge, domain.ErrorResponse{
				Error:   "Request Entity Too Large",
				Message: "File exceeds the upload size limit",
			})
			return
		}
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid multipart form",
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Missing file field",
		})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	result, err := h.uploadService.UploadImage(r.Context(), header.Filename, contentType, file)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedImageType) {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Only image uploads are supported",
			})
			return
		}
		h.logger.Error("failed to upload image", zap.Error(err), zap.String("filename", header.Filename))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to upload image",
		})
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// Download godoc
// @Summary Download a stored image
// @Tags Uploads
// @Produce octet-stream
// @Param path query string true "Storage path returned by upload"
// @Success 200 {file} binary
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /uploads [get]
func (h *UploadHandler) Download(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Missing path parameter",
		})
		return
	}

	reader, err := h.uploadService.DownloadImage(r.Context(), path)
	if err != nil {
		respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
			Error:   "Not Found",
			Message: "File not found",
		})
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("failed to stream file", zap.Error(err), zap.String("path", path))
	}
}
