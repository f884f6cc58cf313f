package storage

import (
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// MaxImageBytes is the largest accepted upload.
const MaxImageBytes = 10 << 20

// MaxImagesPerRequest caps a multi-image upload.
const MaxImagesPerRequest = 10

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/avif": true,
	"image/webp": true,
}

// StorageService stores listing and profile images.
type StorageService interface {
	UploadImage(ctx context.Context, file io.Reader, filename string) (*UploadedImage, error)
	DeleteImage(ctx context.Context, publicID string) error
}

// UploadedImage is the stored location of an image.
type UploadedImage struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// MediaAPI is the part of the Cloudinary upload API in use.
type MediaAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}
