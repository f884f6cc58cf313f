package handlers

import (
	"mime/multipart"
	"net/http"

	"stayfinder/services/storage"
	"stayfinder/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StorageHandler accepts image uploads for listings and profiles.
type StorageHandler struct {
	svc    storage.StorageService
	logger *zap.Logger
}

func NewStorageHandler(svc storage.StorageService, logger *zap.Logger) *StorageHandler {
	return &StorageHandler{svc: svc, logger: loggerOrNop(logger)}
}

// UploadImage handles a single file in form field "image".
func (h *StorageHandler) UploadImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		respondError(c, h.logger, utils.InvalidInput("No file uploaded"))
		return
	}
	img, err := h.store(c, header)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, img)
}

// UploadImages handles up to storage.MaxImagesPerRequest files in form field "images".
func (h *StorageHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		respondError(c, h.logger, utils.InvalidInput("No files uploaded"))
		return
	}
	files := form.File["images"]
	if len(files) > storage.MaxImagesPerRequest {
		respondError(c, h.logger, utils.InvalidInput("Too many files. Maximum is 10 files."))
		return
	}

	// Validate everything before uploading anything.
	for _, f := range files {
		if err := storage.ValidateImage(f.Header.Get("Content-Type"), f.Size); err != nil {
			respondError(c, h.logger, utils.InvalidInput(err.Error()))
			return
		}
	}

	uploaded := make([]*storage.UploadedImage, 0, len(files))
	for _, f := range files {
		img, err := h.store(c, f)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		uploaded = append(uploaded, img)
	}
	respondData(c, http.StatusOK, uploaded)
}

func (h *StorageHandler) store(c *gin.Context, header *multipart.FileHeader) (*storage.UploadedImage, error) {
	if err := storage.ValidateImage(header.Header.Get("Content-Type"), header.Size); err != nil {
		return nil, utils.InvalidInput(err.Error())
	}
	f, err := header.Open()
	if err != nil {
		return nil, utils.Internal("Error uploading file", err)
	}
	defer f.Close()

	img, err := h.svc.UploadImage(c.Request.Context(), f, header.Filename)
	if err != nil {
		return nil, utils.Internal("Error uploading file", err)
	}
	h.logger.Info("image uploaded", zap.String("publicID", img.PublicID))
	return img, nil
}

// Unavailable answers upload routes when no storage backend is configured.
func Unavailable(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, utils.ErrorResponse{Message: "Image uploads are not configured"})
}
