package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/site"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

const folder = "portfolio/backups"

var tracer = otel.Tracer("backup_usecase")

type snapshotBuilder interface {
	Build(ctx context.Context) (*site.Snapshot, error)
}

// BackupUseCase exports every collection as one JSON document to media
// storage.
type BackupUseCase struct {
	snapshots snapshotBuilder
	uploader  service.Uploader
	logger    logger.Logger
	now       func() time.Time
}

func NewBackupUseCase(snapshots snapshotBuilder, uploader service.Uploader, log logger.Logger) *BackupUseCase {
	return &BackupUseCase{
		snapshots: snapshots,
		uploader:  uploader,
		logger:    log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type BackupOutput struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Bytes    int    `json:"bytes"`
}

func (uc *BackupUseCase) Execute(ctx context.Context) (*BackupOutput, error) {
	ctx, span := tracer.Start(ctx, "Backup")
	defer span.End()

	if uc.uploader == nil {
		return nil, apperror.NewUnavailable("media storage is not configured")
	}
	uc.logger.Info("Starting content backup...")

	snap, err := uc.snapshots.Build(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, apperror.NewInternal("failed to encode backup", err)
	}

	publicID := fmt.Sprintf("backup-%s.json", uc.now().Format("2006-01-02_15-04-05"))
	uploadURL, err := uc.uploader.Upload(ctx, bytes.NewReader(data), folder, publicID)
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to upload backup", err)
		return nil, apperror.NewInternal("failed to upload backup", err)
	}

	uc.logger.Info("Content backup completed and uploaded successfully",
		zap.String("url", uploadURL),
		zap.Int("bytes", len(data)),
	)
	return &BackupOutput{URL: uploadURL, PublicID: folder + "/" + publicID, Bytes: len(data)}, nil
}
