package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	siteUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/site"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type SiteHandler struct {
	siteUseCase *siteUC.SiteUseCase
	logger      logger.Logger
}

func NewSiteHandler(uc *siteUC.SiteUseCase, log logger.Logger) *SiteHandler {
	return &SiteHandler{siteUseCase: uc, logger: log}
}

// Portfolio returns the whole public page in one document.
func (h *SiteHandler) Portfolio(c *gin.Context) {
	snap, err := h.siteUseCase.Snapshot(c.Request.Context())
	if err != nil {
		c.Error(apperror.WithMessage(err, "Failed to fetch portfolio"))
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *SiteHandler) GroupedSkills(c *gin.Context) {
	snap, err := h.siteUseCase.Snapshot(c.Request.Context())
	if err != nil {
		c.Error(apperror.WithMessage(err, "Failed to fetch skills"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"groups": snap.SkillGroups,
		"stats":  snap.SkillStats,
	})
}

func (h *SiteHandler) Dashboard(c *gin.Context) {
	counts, err := h.siteUseCase.Dashboard(c.Request.Context())
	if err != nil {
		c.Error(apperror.WithMessage(err, "Failed to fetch dashboard"))
		return
	}
	c.JSON(http.StatusOK, counts)
}

// Schemas describes every collection so an admin client can build its forms.
func (h *SiteHandler) Schemas(c *gin.Context) {
	c.JSON(http.StatusOK, portfolio.Schemas())
}

func (h *SiteHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}
