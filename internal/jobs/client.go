package jobs

import (
	"context"
	"errors"
	"fmt"

	"review-server/internal/observability"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Client handles enqueueing background jobs
type Client struct {
	client *asynq.Client
	budget DispatchBudget
	logger *observability.Logger
}

// NewClient creates a new job client. budget must match the worker's fan-out
// settings so dispatch tasks get a deadline they can finish in.
func NewClient(redisOpt asynq.RedisClientOpt, budget DispatchBudget, logger *observability.Logger) *Client {
	return &Client{
		client: asynq.NewClient(redisOpt),
		budget: budget,
		logger: logger,
	}
}

// Close closes the client connection
func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueCampaignDispatch enqueues the fan-out for a freshly created campaign.
// A task already queued for the same campaign is treated as success.
func (c *Client) EnqueueCampaignDispatch(ctx context.Context, campaignID, accountID uuid.UUID, recipients int) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "campaign_id", Value: campaignID},
		observability.Field{Key: "account_id", Value: accountID},
	)

	task, err := NewDispatchTask(DispatchJobPayload{
		CampaignID:      campaignID,
		AccountID:       accountID,
		RecipientsCount: recipients,
	}, c.budget.Timeout(recipients))
	if err != nil {
		c.logger.Error(ctx, "failed to create dispatch task", err)
		return fmt.Errorf("failed to create dispatch task: %w", err)
	}

	info, err := c.client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		c.logger.Warn(ctx, "dispatch task already enqueued")
		return nil
	}
	if err != nil {
		c.logger.Error(ctx, "failed to enqueue dispatch task", err)
		return fmt.Errorf("failed to enqueue dispatch task: %w", err)
	}

	c.logger.Info(ctx, fmt.Sprintf("enqueued dispatch task: %s (queue: %s, timeout: %s)", info.ID, info.Queue, info.Timeout))
	return nil
}

// EnqueueAutoPublish enqueues a one-off sweep outside the cron schedule
func (c *Client) EnqueueAutoPublish(ctx context.Context) error {
	info, err := c.client.EnqueueContext(ctx, NewAutoPublishTask())
	if err != nil {
		c.logger.Error(ctx, "failed to enqueue auto publish task", err)
		return fmt.Errorf("failed to enqueue auto publish task: %w", err)
	}

	c.logger.Info(ctx, fmt.Sprintf("enqueued auto publish task: %s", info.ID))
	return nil
}
