package media

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

const rootFolder = "portfolio"

// Folders an upload may target. Anything else lands in "misc".
var allowedFolders = map[string]bool{
	"avatars":      true,
	"resumes":      true,
	"certificates": true,
	"experiences":  true,
	"projects":     true,
}

type UploadMediaUseCase struct {
	uploader service.Uploader
	logger   logger.Logger
}

// NewUploadMediaUseCase accepts a nil uploader; uploads then fail as
// unavailable.
func NewUploadMediaUseCase(u service.Uploader, log logger.Logger) *UploadMediaUseCase {
	return &UploadMediaUseCase{uploader: u, logger: log}
}

type UploadMediaInput struct {
	File     io.Reader
	Folder   string
	Filename string
}

// PublicID is the full storage path, usable with DeleteMediaUseCase.
type UploadMediaOutput struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

func (uc *UploadMediaUseCase) Execute(ctx context.Context, input UploadMediaInput) (*UploadMediaOutput, error) {
	if uc.uploader == nil {
		return nil, apperror.NewUnavailable("media uploads are not configured")
	}

	folder := input.Folder
	if !allowedFolders[folder] {
		folder = "misc"
	}
	name := uuid.New().String()
	path := fmt.Sprintf("%s/%s", rootFolder, folder)

	url, err := uc.uploader.Upload(ctx, input.File, path, name)
	if err != nil {
		uc.logger.Error("Failed to upload media", err, zap.String("filename", input.Filename))
		return nil, apperror.NewInternal("failed to upload media file", err)
	}

	publicID := path + "/" + name
	uc.logger.Info("Media uploaded", zap.String("folder", folder), zap.String("public_id", publicID))
	return &UploadMediaOutput{URL: url, PublicID: publicID}, nil
}
