package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/content"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type ExperienceImageHandler struct {
	images *content.ExperienceImages
	logger logger.Logger
}

func NewExperienceImageHandler(images *content.ExperienceImages, log logger.Logger) *ExperienceImageHandler {
	return &ExperienceImageHandler{images: images, logger: log}
}

func (h *ExperienceImageHandler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.POST("/experiences/:id/certificates", h.Attach)
	rg.DELETE("/experiences/:id/certificates/:index", h.Detach)
}

func (h *ExperienceImageHandler) Attach(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req CertificateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("'url' is required", err))
		return
	}

	exp, err := h.images.Attach(c.Request.Context(), id, req.URL, req.Alt)
	if err != nil {
		c.Error(apperror.WithMessage(err, "Failed to save experience"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Certificate image added", "data": exp})
}

func (h *ExperienceImageHandler) Detach(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid image index", err))
		return
	}

	exp, err := h.images.Detach(c.Request.Context(), id, index)
	if err != nil {
		c.Error(apperror.WithMessage(err, "Failed to save experience"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Certificate image removed", "data": exp})
}
