package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/gmbtravels/gmb-backend/services"
)

// UploadHandler accepts admin image uploads and returns their public URL.
type UploadHandler struct {
	Images *services.ImageStore
}

func NewUploadHandler(images *services.ImageStore) *UploadHandler {
	return &UploadHandler{Images: images}
}

func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		fail(c, http.StatusBadRequest, "validation_error", "missing 'image' form field")
		return
	}

	url, err := h.Images.Save(fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnsupportedMediaType):
			fail(c, http.StatusUnsupportedMediaType, "unsupported_media_type", "only jpg, jpeg, png, gif and webp images are accepted")
		case errors.Is(err, services.ErrFileTooLarge):
			fail(c, http.StatusBadRequest, "validation_error", "image exceeds the 5 MiB limit")
		default:
			log.Error().Err(err).Msg("error storing uploaded image")
			fail(c, http.StatusInternalServerError, "store_error", "failed to store image")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "url": url})
}
