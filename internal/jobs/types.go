package jobs

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Job type constants
const (
	TypeMailingDispatch    = "mailing:dispatch"
	TypeReviewsAutoPublish = "reviews:auto_publish"
	TypeOrderReviewRequest = "orders:review_requests"
)

// Queue names
const (
	QueueHigh = "high"
	QueueLow  = "low"
)

// DispatchJobPayload identifies the campaign a dispatch task fans out
type DispatchJobPayload struct {
	CampaignID      uuid.UUID `json:"campaign_id"`
	AccountID       uuid.UUID `json:"account_id"`
	RecipientsCount int       `json:"recipients_count"`
}

const (
	minDispatchTimeout   = 5 * time.Minute
	dispatchTimeoutSlack = 2 * time.Minute
	defaultSendTimeout   = 15 * time.Second
)

// DispatchBudget sizes the deadline of a dispatch task from the fan-out
// settings the worker runs with.
type DispatchBudget struct {
	SendTimeout time.Duration
	Concurrency int
}

// Timeout is the worst case for every recipient timing out, one wave of
// Concurrency sends at a time, plus slack for the status writes.
func (b DispatchBudget) Timeout(recipients int) time.Duration {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	send := b.SendTimeout
	if send <= 0 {
		send = defaultSendTimeout
	}
	waves := (recipients + concurrency - 1) / concurrency
	timeout := time.Duration(waves)*send + dispatchTimeoutSlack
	if timeout < minDispatchTimeout {
		return minDispatchTimeout
	}
	return timeout
}

// dispatchTaskID makes a second enqueue for the same campaign a conflict
// rather than a second fan-out.
func dispatchTaskID(campaignID uuid.UUID) string {
	return "dispatch:" + campaignID.String()
}

// NewDispatchTask creates a campaign dispatch task. Dispatch is never retried
// by the queue; recipients left pending stay pending for an explicit rerun.
func NewDispatchTask(payload DispatchJobPayload, timeout time.Duration) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeMailingDispatch, data,
		asynq.Queue(QueueHigh),
		asynq.MaxRetry(0),
		asynq.TaskID(dispatchTaskID(payload.CampaignID)),
		asynq.Timeout(timeout),
	), nil
}

// ParseDispatchPayload decodes a dispatch task payload
func ParseDispatchPayload(task *asynq.Task) (DispatchJobPayload, error) {
	var payload DispatchJobPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DispatchJobPayload{}, fmt.Errorf("failed to unmarshal dispatch job payload: %w", err)
	}
	if payload.CampaignID == uuid.Nil {
		return DispatchJobPayload{}, fmt.Errorf("dispatch job payload has no campaign id")
	}
	return payload, nil
}

// NewAutoPublishTask creates the periodic sweep task
func NewAutoPublishTask() *asynq.Task {
	return asynq.NewTask(TypeReviewsAutoPublish, nil, asynq.Queue(QueueLow), asynq.MaxRetry(1))
}

// NewReviewRequestTask creates the periodic order review-request task
func NewReviewRequestTask() *asynq.Task {
	return asynq.NewTask(TypeOrderReviewRequest, nil, asynq.Queue(QueueLow), asynq.MaxRetry(1))
}
