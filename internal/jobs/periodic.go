package jobs

import (
	"context"
	"fmt"
	"os"

	"review-server/internal/config"
	"review-server/internal/observability"

	"github.com/hibiken/asynq"
)

// RedisOpt builds the asynq connection options from the shared Redis settings
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// PeriodicSchedule holds the cron expression of every periodic task
type PeriodicSchedule struct {
	SweepCron         string
	ReviewRequestCron string
}

// NewPeriodicScheduler registers the auto-publish sweep and the order
// review-request run on their cron expressions
func NewPeriodicScheduler(redisOpt asynq.RedisClientOpt, schedule PeriodicSchedule, logger *observability.Logger) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Logger: NewAsynqLogger(logger),
	})

	entries := []struct {
		cronspec string
		task     *asynq.Task
	}{
		{schedule.SweepCron, NewAutoPublishTask()},
		{schedule.ReviewRequestCron, NewReviewRequestTask()},
	}
	for _, e := range entries {
		entryID, err := scheduler.Register(e.cronspec, e.task)
		if err != nil {
			return nil, fmt.Errorf("failed to register %s task on %q: %w", e.task.Type(), e.cronspec, err)
		}
		logger.Info(context.Background(), fmt.Sprintf("registered %s task %s on %q", e.task.Type(), entryID, e.cronspec))
	}
	return scheduler, nil
}

// asynqLogger adapts observability.Logger to asynq.Logger interface
type asynqLogger struct {
	logger *observability.Logger
}

func NewAsynqLogger(logger *observability.Logger) asynq.Logger {
	return &asynqLogger{logger: logger}
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(context.Background(), fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(context.Background(), fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(context.Background(), fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(context.Background(), fmt.Sprint(args...), nil)
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(context.Background(), fmt.Sprint(args...), nil)
	os.Exit(1)
}
