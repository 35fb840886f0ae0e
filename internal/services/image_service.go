package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/asahina-dev/teamspace-api/internal/storage"
	"github.com/google/uuid"
)

// ImageService uploads workspace and project images to object storage and
// returns them as base64 data URIs. Embedding the image on the record saves
// the client a second round trip, at the cost of large rows.
type ImageService struct {
	store storage.Storage
}

// NewImageService creates a new ImageService.
func NewImageService(store storage.Storage) *ImageService {
	return &ImageService{store: store}
}

// UploadAsDataURI stores the image bytes under a fresh key, reads them back,
// and returns the result as a data URI.
func (s *ImageService) UploadAsDataURI(ctx context.Context, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/png"
	}

	key := uuid.NewString()
	if err := s.store.Put(ctx, key, data, contentType); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	stored, err := s.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to read back image: %w", err)
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(stored), nil
}
