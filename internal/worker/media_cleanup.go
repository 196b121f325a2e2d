// Package worker runs background consumers for queued tasks.
package worker

import (
	"context"
	"fmt"
	"time"

	"vidtube/pkg/logger"
	"vidtube/pkg/metrics"
	"vidtube/pkg/queue"
)

// MaxCleanupAttempts bounds how often a single asset deletion is retried.
const MaxCleanupAttempts = 5

type Deleter interface {
	Delete(ctx context.Context, publicID string) error
}

type TaskQueue interface {
	PublishCleanupTask(ctx context.Context, task queue.CleanupTask) error
	ConsumeCleanupTasks(ctx context.Context, handler func(ctx context.Context, task queue.CleanupTask) error) error
}

// MediaCleanupWorker deletes assets whose inline deletion failed. A failed
// attempt is republished with Attempt+1 until MaxCleanupAttempts is reached.
type MediaCleanupWorker struct {
	storage Deleter
	queue   TaskQueue
	logger  *logger.Logger
	backoff time.Duration
}

func NewMediaCleanupWorker(storage Deleter, q TaskQueue, log *logger.Logger) *MediaCleanupWorker {
	return &MediaCleanupWorker{
		storage: storage,
		queue:   q,
		logger:  log,
		backoff: 2 * time.Second,
	}
}

// Start registers the consumer. Tasks are handled until ctx is cancelled.
func (w *MediaCleanupWorker) Start(ctx context.Context) error {
	if err := w.queue.ConsumeCleanupTasks(ctx, w.Handle); err != nil {
		return fmt.Errorf("start media cleanup worker: %w", err)
	}
	w.logger.Info("[WORKER] Media cleanup worker started")
	return nil
}

func (w *MediaCleanupWorker) Handle(ctx context.Context, task queue.CleanupTask) error {
	if task.PublicID == "" {
		metrics.MediaCleanupTotal.WithLabelValues("dropped").Inc()
		return nil
	}

	deleteCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err := w.storage.Delete(deleteCtx, task.PublicID)
	cancel()
	if err == nil {
		w.logger.Info("[WORKER] Deleted orphaned asset %s after %d attempt(s)", task.PublicID, task.Attempt)
		metrics.MediaCleanupTotal.WithLabelValues("deleted").Inc()
		return nil
	}

	if task.Attempt >= MaxCleanupAttempts {
		w.logger.Error("[WORKER] Giving up on %s after %d attempts: %v", task.PublicID, task.Attempt, err)
		metrics.MediaCleanupTotal.WithLabelValues("dropped").Inc()
		return fmt.Errorf("delete %s: %w", task.PublicID, err)
	}

	if w.backoff > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.backoff * time.Duration(task.Attempt)):
		}
	}

	retry := task
	retry.Attempt++
	retry.QueuedAt = time.Now().UTC()
	if pubErr := w.queue.PublishCleanupTask(ctx, retry); pubErr != nil {
		metrics.MediaCleanupTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("requeue %s: %w", task.PublicID, pubErr)
	}
	metrics.MediaCleanupTotal.WithLabelValues("queued").Inc()
	return fmt.Errorf("delete %s: %w", task.PublicID, err)
}
