package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/learnhub/learnhub-api/pkg/logger"
	"github.com/learnhub/learnhub-api/pkg/metrics"
	"go.uber.org/zap"
)

// ImageStorage persists uploaded course images and returns the path or URL
// that is stored in the course record and served back to browsers.
type ImageStorage interface {
	SaveImage(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// validImageTypes are the content types accepted for course images.
var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// ValidateImageType validates the image content type
func ValidateImageType(contentType string) error {
	if !validImageTypes[strings.ToLower(contentType)] {
		return fmt.Errorf("invalid file type: %s. Allowed types: jpeg, jpg, png, webp, gif", contentType)
	}
	return nil
}

// LocalStorage writes images to a directory served as static files.
type LocalStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage creates a local-disk image store rooted at dir. Files are
// served back under baseURL (e.g. "/uploads").
func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	logger.Info("Local image storage initialized",
		zap.String("dir", dir),
		zap.String("base_url", baseURL))

	return &LocalStorage{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// SaveImage writes the image to disk and returns its public path. The
// returned path always uses forward slashes regardless of host OS.
func (s *LocalStorage) SaveImage(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	start := time.Now()
	operation := "saveImageLocal"

	if err := ValidateImageType(contentType); err != nil {
		return "", err
	}

	dst := filepath.Join(s.dir, filepath.Clean("/"+key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}

	if err := os.WriteFile(dst, data, 0o644); err != nil {
		duration := metrics.MeasureDuration(start)
		metrics.StorageRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.StorageRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall("local_storage", operation, "error", duration, zap.Error(err))
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	metrics.StorageRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall("local_storage", operation, "success", duration,
		zap.String("key", key),
		zap.Int("size_bytes", len(data)))

	return s.baseURL + "/" + filepath.ToSlash(strings.TrimPrefix(key, "/")), nil
}
