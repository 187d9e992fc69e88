package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	mediaUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/media"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type MediaHandler struct {
	uploadMediaUC *mediaUC.UploadMediaUseCase
	deleteMediaUC *mediaUC.DeleteMediaUseCase
	logger        logger.Logger
}

func NewMediaHandler(uploadUC *mediaUC.UploadMediaUseCase, deleteUC *mediaUC.DeleteMediaUseCase, log logger.Logger) *MediaHandler {
	return &MediaHandler{
		uploadMediaUC: uploadUC,
		deleteMediaUC: deleteUC,
		logger:        log,
	}
}

// UploadMedia stores a multipart "file" under the optional "folder" and
// returns the hosted URL for use in a content field.
func (h *MediaHandler) UploadMedia(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open file", err))
		return
	}
	defer file.Close()

	input := mediaUC.UploadMediaInput{
		File:     file,
		Folder:   c.PostForm("folder"),
		Filename: fileHeader.Filename,
	}

	output, err := h.uploadMediaUC.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(apperror.WithMessage(err, "Failed to upload file"))
		return
	}
	c.JSON(http.StatusCreated, output)
}

// DeleteMedia removes an uploaded asset by the public_id its upload returned.
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	if err := h.deleteMediaUC.Execute(c.Request.Context(), c.Param("public_id")); err != nil {
		c.Error(apperror.WithMessage(err, "Failed to delete file"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true, "message": "File deleted successfully!"})
}
