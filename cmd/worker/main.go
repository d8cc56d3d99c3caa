package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"review-server/internal/bootstrap"
	"review-server/internal/config"
	"review-server/internal/jobs"
	"review-server/internal/jobs/workers"
	"review-server/internal/observability"

	"github.com/hibiken/asynq"
)

func main() {
	logger := observability.NewLogger()
	defer logger.Sync()
	ctx := context.Background()

	logger.Info(ctx, "Starting background worker server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Jobs.Backend != config.JobsBackendAsynq {
		log.Fatalf("worker requires JOBS_BACKEND=%s, got %s", config.JobsBackendAsynq, cfg.Jobs.Backend)
	}

	deps, err := bootstrap.Initialize(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer deps.Cleanup(ctx)

	autoPublishWorker := workers.NewPeriodicWorker(deps.Sweeper, logger)
	reviewRequestWorker := workers.NewPeriodicWorker(deps.ReviewRequests, logger)
	redisOpt := jobs.RedisOpt(cfg.Redis)

	// Create Asynq server with queue configuration
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: cfg.Jobs.DispatchWorkers + 2,
			Queues: map[string]int{
				jobs.QueueHigh: 6,
				jobs.QueueLow:  1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error(ctx, fmt.Sprintf("task %s failed", task.Type()), err)
			}),
			RetryDelayFunc: asynq.DefaultRetryDelayFunc,
			Logger:         jobs.NewAsynqLogger(logger),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(jobs.TypeMailingDispatch, deps.DispatchWorker.ProcessDispatchTask)
	mux.HandleFunc(jobs.TypeReviewsAutoPublish, autoPublishWorker.ProcessTask)
	mux.HandleFunc(jobs.TypeOrderReviewRequest, reviewRequestWorker.ProcessTask)

	scheduler, err := jobs.NewPeriodicScheduler(redisOpt, jobs.PeriodicSchedule{
		SweepCron:         cfg.Jobs.SweepCron,
		ReviewRequestCron: cfg.Jobs.ReviewRequestCron,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Shutdown()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start the server in a goroutine
	go func() {
		logger.Info(ctx, fmt.Sprintf("Worker server started on Redis: %s", redisOpt.Addr))
		if err := srv.Run(mux); err != nil {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	<-sigChan
	logger.Info(ctx, "Shutting down worker server...")

	srv.Shutdown()
	logger.Info(ctx, "Worker server stopped")
}
