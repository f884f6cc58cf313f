package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	api    MediaAPI
	folder string
}

func NewStorageService(media MediaAPI, folder string) *CloudinaryStorage {
	return &CloudinaryStorage{api: media, folder: folder}
}

// ValidateImage checks an upload's declared type and size.
func ValidateImage(contentType string, size int64) error {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if !allowedImageTypes[mediaType] {
		return fmt.Errorf("unsupported image type %q", contentType)
	}
	if size > MaxImageBytes {
		return fmt.Errorf("image exceeds %d MB", MaxImageBytes>>20)
	}
	return nil
}

// UploadImage stores the image under the configured folder. The public id is
// derived from the original file name plus a random suffix.
func (s *CloudinaryStorage) UploadImage(ctx context.Context, file io.Reader, filename string) (*UploadedImage, error) {
	params := uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     publicID(filename),
		ResourceType: "image",
		Overwrite:    api.Bool(false),
	}
	result, err := s.api.Upload(ctx, file, params)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("storage: upload rejected: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return nil, fmt.Errorf("storage: no URL returned")
	}
	return &UploadedImage{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

func (s *CloudinaryStorage) DeleteImage(ctx context.Context, id string) error {
	if _, err := s.api.Destroy(ctx, uploader.DestroyParams{PublicID: id}); err != nil {
		return fmt.Errorf("storage: failed to delete image: %w", err)
	}
	return nil
}

func publicID(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '-'
	}, base)
	if base == "" || base == "." {
		base = "image"
	}
	return base + "-" + uuid.New().String()[:8]
}
