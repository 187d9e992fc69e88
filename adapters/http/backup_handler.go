package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	backupUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/backup"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type BackupHandler struct {
	backupUseCase *backupUC.BackupUseCase
	logger        logger.Logger
}

func NewBackupHandler(uc *backupUC.BackupUseCase, log logger.Logger) *BackupHandler {
	return &BackupHandler{backupUseCase: uc, logger: log}
}

func (h *BackupHandler) CreateBackup(c *gin.Context) {
	output, err := h.backupUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(apperror.WithMessage(err, "Failed to create backup"))
		return
	}
	c.JSON(http.StatusCreated, output)
}
