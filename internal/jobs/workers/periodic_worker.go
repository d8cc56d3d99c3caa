package workers

import (
	"context"

	"review-server/internal/observability"

	"github.com/hibiken/asynq"
)

// PeriodicJob runs one pass of a scheduled job
type PeriodicJob interface {
	Name() string
	Run(ctx context.Context) error
}

// PeriodicWorker handles a payload-less cron task by running its job once
type PeriodicWorker struct {
	job    PeriodicJob
	logger *observability.Logger
}

// NewPeriodicWorker creates a worker for job
func NewPeriodicWorker(job PeriodicJob, logger *observability.Logger) *PeriodicWorker {
	return &PeriodicWorker{
		job:    job,
		logger: logger,
	}
}

// ProcessTask processes one tick of the cron task (for Asynq)
func (w *PeriodicWorker) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "job", Value: w.job.Name()})
	if err := w.job.Run(ctx); err != nil {
		w.logger.Error(ctx, "periodic job failed", err)
		return err
	}
	return nil
}
