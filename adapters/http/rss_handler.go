package http

import (
	"github.com/gin-gonic/gin"
	siteUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/site"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type RSSHandler struct {
	siteUseCase *siteUC.SiteUseCase
	logger      logger.Logger
}

func NewRSSHandler(uc *siteUC.SiteUseCase, log logger.Logger) *RSSHandler {
	return &RSSHandler{
		siteUseCase: uc,
		logger:      log,
	}
}

func (h *RSSHandler) ProjectsRSS(c *gin.Context) {
	feed, err := h.siteUseCase.ProjectsFeed(c.Request.Context())
	if err != nil {
		c.Error(apperror.WithMessage(err, "Failed to generate projects feed"))
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")

	if err := feed.WriteRss(c.Writer); err != nil {
		h.logger.Error("Failed to write RSS feed to response", err)
	}
}
