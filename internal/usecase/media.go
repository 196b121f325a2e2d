package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"vidtube/pkg/logger"
	"vidtube/pkg/media"
	"vidtube/pkg/metrics"
	"vidtube/pkg/queue"
)

// Upload is a file received with a request.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// CleanupPublisher queues deletions that could not be completed inline.
type CleanupPublisher interface {
	PublishCleanupTask(ctx context.Context, task queue.CleanupTask) error
}

// mediaManager uploads assets and deletes them again when the write that
// should reference them fails.
type mediaManager struct {
	storage media.Storage
	cleanup CleanupPublisher
	logger  *logger.Logger
}

func newMediaManager(storage media.Storage, cleanup CleanupPublisher, log *logger.Logger) *mediaManager {
	return &mediaManager{storage: storage, cleanup: cleanup, logger: log}
}

func (m *mediaManager) upload(ctx context.Context, folder, ownerID string, file *Upload) (*media.Asset, error) {
	key := media.ObjectKey(folder, ownerID, file.Filename)
	asset, err := m.storage.Upload(ctx, key, file.Body, file.Size, file.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}
	m.logger.Debug("Uploaded %s (%d bytes)", asset.PublicID, file.Size)
	return asset, nil
}

// discard deletes assets that are no longer referenced. It runs after the
// request may have been cancelled, so it detaches from ctx's deadline. A
// failed delete is queued for the cleanup worker.
func (m *mediaManager) discard(ctx context.Context, reason string, assets ...*media.Asset) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
	defer cancel()

	for _, asset := range assets {
		if asset == nil || asset.PublicID == "" {
			continue
		}
		m.discardID(ctx, reason, asset.PublicID)
	}
}

func (m *mediaManager) discardID(ctx context.Context, reason, publicID string) {
	err := m.storage.Delete(ctx, publicID)
	if err == nil {
		metrics.MediaCleanupTotal.WithLabelValues("deleted").Inc()
		return
	}
	m.logger.Warn("Failed to delete %s (%s): %v", publicID, reason, err)

	if m.cleanup == nil {
		m.logger.Error("No cleanup queue configured, %s is orphaned", publicID)
		metrics.MediaCleanupTotal.WithLabelValues("failed").Inc()
		return
	}
	task := queue.CleanupTask{
		PublicID: publicID,
		Reason:   reason,
		Attempt:  1,
		QueuedAt: time.Now(),
	}
	if err := m.cleanup.PublishCleanupTask(ctx, task); err != nil {
		m.logger.Error("Failed to queue cleanup of %s: %v", publicID, err)
		metrics.MediaCleanupTotal.WithLabelValues("failed").Inc()
		return
	}
	metrics.MediaCleanupTotal.WithLabelValues("queued").Inc()
}

// discardIDs deletes previously stored assets by public id.
func (m *mediaManager) discardIDs(ctx context.Context, reason string, publicIDs ...string) {
	assets := make([]*media.Asset, 0, len(publicIDs))
	for _, id := range publicIDs {
		assets = append(assets, &media.Asset{PublicID: id})
	}
	m.discard(ctx, reason, assets...)
}
