package workers

import (
	"context"

	"review-server/internal/jobs"
)

// JobProcessor handles dispatch jobs taken off the in-process queue.
// A job is processed at most once; there is no redelivery.
type JobProcessor interface {
	Process(ctx context.Context, job jobs.DispatchJobPayload) error

	// Name returns the processor name for logging and metrics.
	Name() string
}

// WorkerPool defines the interface for managing a pool of job workers.
type WorkerPool interface {
	// Start initializes the worker pool with N workers.
	Start(ctx context.Context) error

	// Submit adds a job to the queue. Blocks if the queue is full.
	Submit(ctx context.Context, job jobs.DispatchJobPayload) error

	// Drain stops accepting new jobs and waits for in-flight jobs to complete.
	Drain(ctx context.Context) error

	// Stop immediately stops all workers.
	Stop()
}
