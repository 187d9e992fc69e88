package media

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type DeleteMediaUseCase struct {
	uploader service.Uploader
	logger   logger.Logger
}

func NewDeleteMediaUseCase(u service.Uploader, log logger.Logger) *DeleteMediaUseCase {
	return &DeleteMediaUseCase{uploader: u, logger: log}
}

// Execute removes an asset previously returned by an upload. Only ids under
// the portfolio folder are accepted.
func (uc *DeleteMediaUseCase) Execute(ctx context.Context, publicID string) error {
	if uc.uploader == nil {
		return apperror.NewUnavailable("media uploads are not configured")
	}

	publicID = strings.Trim(publicID, "/")
	if !strings.HasPrefix(publicID, rootFolder+"/") || strings.Contains(publicID, "..") {
		return apperror.NewInvalidInput("invalid media id", nil)
	}

	if err := uc.uploader.Delete(ctx, publicID); err != nil {
		uc.logger.Error("Failed to delete media", err, zap.String("public_id", publicID))
		return apperror.NewInternal("failed to delete media file", err)
	}

	uc.logger.Info("Media deleted", zap.String("public_id", publicID))
	return nil
}
