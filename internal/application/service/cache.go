package service

import "context"

// SnapshotCache holds the rendered public portfolio document.
type SnapshotCache interface {
	GetSnapshot(ctx context.Context) ([]byte, bool, error)
	SetSnapshot(ctx context.Context, data []byte) error
	InvalidateSnapshot(ctx context.Context) error
}
