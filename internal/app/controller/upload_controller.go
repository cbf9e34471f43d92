package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/tastebook/tastebook-backend/internal/errors"
	"github.com/tastebook/tastebook-backend/internal/middleware"
	"github.com/tastebook/tastebook-backend/internal/storage"
)

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(storage *storage.S3Storage) *UploadController {
	return &UploadController{
		storage: storage,
	}
}

type PresignedURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder" binding:"omitempty,oneof=images videos profiles"`
}

// GetPresignedURL hands out a short-lived PUT URL so clients can upload
// media straight to object storage
// POST /api/v1/uploads/presigned-url
func (ctrl *UploadController) GetPresignedURL(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "filename and content_type are required")
		return
	}

	folder := req.Folder
	if folder == "" {
		folder = "images"
	}

	resp, err := ctrl.storage.GeneratePresignedURL(req.Filename, req.ContentType, folder)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidFileType) {
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only JPEG, PNG and MP4 media are accepted")
			return
		}
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"content_type": req.ContentType,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to prepare upload. Please try again")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": resp,
	})
}
