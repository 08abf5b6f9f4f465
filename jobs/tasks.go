// Package jobs holds the background task definitions and the Asynq worker
// that runs them. The only recurring job today is the stale-cart sweep:
// carts abandoned for long enough are presumed dead and their lines are
// dropped so the snapshot data does not accumulate forever.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeCartCleanup is the task type for sweeping stale cart lines.
	TaskTypeCartCleanup = "cart:cleanup"
)

// CartCleanupPayload selects which cart lines the sweep removes.
type CartCleanupPayload struct {
	Days int `json:"days"`
}

// NewCartCleanupTask constructs an Asynq task.
func NewCartCleanupTask(days int) (*asynq.Task, error) {
	if days <= 0 {
		return nil, fmt.Errorf("jobs: cleanup days must be positive, got %d", days)
	}
	data, err := json.Marshal(CartCleanupPayload{Days: days})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeCartCleanup, data), nil
}

// CartSweeper deletes cart lines older than the cutoff and reports how
// many were removed.
type CartSweeper interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// CartCleanupJob wires the sweep handler to its dependencies.
type CartCleanupJob struct {
	sweeper CartSweeper
	logger  *slog.Logger
}

// NewCartCleanupJob constructs the job.
func NewCartCleanupJob(sweeper CartSweeper, logger *slog.Logger) *CartCleanupJob {
	return &CartCleanupJob{sweeper: sweeper, logger: logger}
}

// Handle processes TaskTypeCartCleanup tasks.
func (j *CartCleanupJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload CartCleanupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Days <= 0 {
		payload.Days = 30
	}
	cutoff := time.Now().AddDate(0, 0, -payload.Days)
	removed, err := j.sweeper.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("jobs: cart cleanup: %w", err)
	}
	if j.logger != nil {
		j.logger.Info("cart cleanup finished",
			slog.Int64("removed", removed),
			slog.Time("cutoff", cutoff))
	}
	return nil
}
