package workers

//go:generate go run go.uber.org/mock/mockgen@latest -source=dispatch_worker.go -destination=mocks_test.go -package=workers

import (
	"context"
	"fmt"
	"time"

	"review-server/internal/jobs"
	"review-server/internal/mailing/processor"
	"review-server/internal/observability"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// CampaignDispatcher fans a campaign out to its pending recipients
type CampaignDispatcher interface {
	Dispatch(ctx context.Context, campaignID uuid.UUID) (processor.DispatchResult, error)
}

// DispatchWorker handles mailing dispatch tasks
type DispatchWorker struct {
	dispatcher CampaignDispatcher
	logger     *observability.Logger
}

// NewDispatchWorker creates a new dispatch worker
func NewDispatchWorker(dispatcher CampaignDispatcher, logger *observability.Logger) *DispatchWorker {
	return &DispatchWorker{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ProcessDispatchTask processes a dispatch task (for Asynq)
func (w *DispatchWorker) ProcessDispatchTask(ctx context.Context, task *asynq.Task) error {
	payload, err := jobs.ParseDispatchPayload(task)
	if err != nil {
		w.logger.Error(ctx, "invalid dispatch task", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	return w.Process(ctx, payload)
}

// Name returns the processor name for logging
func (w *DispatchWorker) Name() string {
	return "mailing_dispatch"
}

// Process runs one campaign dispatch. The in-process worker pool calls it directly.
func (w *DispatchWorker) Process(ctx context.Context, payload jobs.DispatchJobPayload) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "campaign_id", Value: payload.CampaignID},
		observability.Field{Key: "account_id", Value: payload.AccountID},
	)

	start := time.Now()
	result, err := w.dispatcher.Dispatch(ctx, payload.CampaignID)
	if err != nil {
		w.logger.Error(ctx, "campaign dispatch failed", err)
		return fmt.Errorf("campaign dispatch failed: %w", err)
	}

	w.logger.Metrics(ctx,
		observability.MetricField{Key: "dispatch_attempted", Value: result.Attempted},
		observability.MetricField{Key: "dispatch_sent", Value: result.Sent},
		observability.MetricField{Key: "dispatch_failed", Value: result.Failed},
		observability.MetricField{Key: "dispatch_skipped", Value: result.Skipped},
		observability.MetricField{Key: "dispatch_duration", Value: time.Since(start)},
	)
	return nil
}
