package workers

import (
	"context"
	"fmt"
	"time"

	"review-server/internal/jobs"

	"github.com/google/uuid"
)

const defaultSubmitTimeout = 2 * time.Second

// Enqueuer feeds campaign dispatches into the in-process pool. It stands in
// for the asynq client when JOBS_BACKEND=inprocess.
type Enqueuer struct {
	pool          WorkerPool
	submitTimeout time.Duration
}

func NewEnqueuer(pool WorkerPool) *Enqueuer {
	return &Enqueuer{
		pool:          pool,
		submitTimeout: defaultSubmitTimeout,
	}
}

// EnqueueCampaignDispatch queues the campaign, failing rather than blocking
// the request when the queue stays full.
func (e *Enqueuer) EnqueueCampaignDispatch(ctx context.Context, campaignID, accountID uuid.UUID, recipients int) error {
	// detach from the request so the job outlives it
	submitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.submitTimeout)
	defer cancel()

	if err := e.pool.Submit(submitCtx, jobs.DispatchJobPayload{
		CampaignID:      campaignID,
		AccountID:       accountID,
		RecipientsCount: recipients,
	}); err != nil {
		return fmt.Errorf("failed to enqueue campaign dispatch in process: %w", err)
	}
	return nil
}
