package bootstrap

import (
	"context"
	"fmt"

	"review-server/internal/config"
	"review-server/internal/distlock"
	"review-server/internal/jobs"
	"review-server/internal/jobs/scheduler"
	jobWorkers "review-server/internal/jobs/workers"
	"review-server/internal/observability"
	"review-server/internal/quota"
	"review-server/internal/reviewrequests"
	"review-server/internal/store"
	"review-server/internal/sweeper"
	"review-server/internal/workers"

	authHandler "review-server/internal/auth/handler"
	authProcessor "review-server/internal/auth/processor"
	billingHandler "review-server/internal/billing/handler"
	billingProcessor "review-server/internal/billing/processor"
	branchHandler "review-server/internal/branches/handler"
	branchProcessor "review-server/internal/branches/processor"
	"review-server/internal/clients/mail"
	redisClient "review-server/internal/clients/redis"
	"review-server/internal/clients/translate"
	mailingHandler "review-server/internal/mailing/handler"
	mailingProcessor "review-server/internal/mailing/processor"
	quotaHandler "review-server/internal/quota/handler"
	reviewHandler "review-server/internal/reviews/handler"
	reviewProcessor "review-server/internal/reviews/processor"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store  store.Store
	Logger *observability.Logger
	Config *config.Config

	// Services shared by the API, the worker and the CLI
	Quota          *quota.Service
	Auth           *authProcessor.AuthProcessor
	Campaigns      *mailingProcessor.CampaignProcessor
	Sweeper        *sweeper.Sweeper
	ReviewRequests *reviewrequests.Sender
	DispatchWorker *jobWorkers.DispatchWorker

	// Handlers
	AuthHandler    authHandler.Handler
	ReviewHandler  reviewHandler.Handler
	BranchHandler  branchHandler.Handler
	MailingHandler mailingHandler.Handler
	QuotaHandler   quotaHandler.Handler
	BillingHandler billingHandler.Handler

	// Background work. JobClient is set for the asynq backend; DispatchPool
	// and Scheduler for the in-process backend.
	Redis        *redisClient.Client
	JobClient    *jobs.Client
	DispatchPool workers.WorkerPool
	Scheduler    *scheduler.Scheduler

	stopBackground context.CancelFunc
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
		Config: cfg,
	}

	// Initialize database store
	var err error
	deps.Store, err = store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize clients
	deps.Redis, err = redisClient.NewClient(cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	mailClient, err := mail.New(ctx, cfg.Mail, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	translator, err := translate.NewClient(ctx, cfg.Services.GoogleTranslateAPIKey, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create translate client: %w", err)
	}

	renderer, err := mailingProcessor.NewRenderer(cfg.Services.ReviewBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create email renderer: %w", err)
	}

	// Quota accounting gates every other processor
	deps.Quota = quota.New(&deps.Store, logger)
	deps.QuotaHandler = quotaHandler.New(deps.Quota, logger)

	authProc := authProcessor.New(cfg.Auth.JWTSecret, logger)
	deps.Auth = &authProc
	deps.AuthHandler = authHandler.New(deps.Auth, logger)

	reviewProc := reviewProcessor.New(&deps.Store, deps.Quota, logger)
	deps.ReviewHandler = reviewHandler.New(reviewProc, logger)

	branchProc := branchProcessor.New(&deps.Store, deps.Quota, logger)
	deps.BranchHandler = branchHandler.New(branchProc, logger)

	billingProc := billingProcessor.New(cfg.Services.StripeWebhookSecret, deps.Quota, logger)
	deps.BillingHandler = billingHandler.New(billingProc, billingProc.WebhookSecret, logger)

	deps.Campaigns = mailingProcessor.New(
		&deps.Store,
		deps.Quota,
		mailClient,
		translator,
		renderer,
		mailingProcessor.DispatchConfig{
			Concurrency: cfg.Jobs.SendConcurrency,
			SendTimeout: cfg.Jobs.SendTimeout,
			FromAddress: cfg.Mail.DefaultSender,
		},
		logger,
	)
	deps.MailingHandler = mailingHandler.New(deps.Campaigns, logger)
	deps.DispatchWorker = jobWorkers.NewDispatchWorker(deps.Campaigns, logger)

	// The sweep lock only matters when several processes can sweep
	var locker sweeper.Locker
	if deps.Redis.IsEnabled() {
		locker = distlock.New(deps.Redis.GetClient(), logger)
	}
	deps.Sweeper = sweeper.New(&deps.Store, locker, cfg.Jobs.SweepInterval, logger)
	deps.ReviewRequests = reviewrequests.New(&deps.Store, mailClient, renderer, locker, reviewrequests.Config{
		Delay:       cfg.Jobs.ReviewRequestDelay,
		Interval:    cfg.Jobs.ReviewRequestInterval,
		SendTimeout: cfg.Jobs.SendTimeout,
		FromAddress: cfg.Mail.DefaultSender,
	}, logger)

	switch cfg.Jobs.Backend {
	case config.JobsBackendAsynq:
		deps.JobClient = jobs.NewClient(jobs.RedisOpt(cfg.Redis), jobs.DispatchBudget{
			SendTimeout: cfg.Jobs.SendTimeout,
			Concurrency: cfg.Jobs.SendConcurrency,
		}, logger)
		deps.Campaigns.SetEnqueuer(deps.JobClient)
	case config.JobsBackendInProcess:
		deps.DispatchPool = workers.NewPool(workers.PoolConfig{
			Workers:   cfg.Jobs.DispatchWorkers,
			QueueSize: cfg.Jobs.DispatchQueueSize,
		}, deps.DispatchWorker, logger)
		deps.Campaigns.SetEnqueuer(workers.NewEnqueuer(deps.DispatchPool))

		deps.Scheduler = scheduler.New(logger)
		deps.Scheduler.Register(deps.Sweeper)
		deps.Scheduler.Register(deps.ReviewRequests)
	}

	return deps, nil
}

// StartBackground starts the in-process dispatch pool and sweep scheduler.
// With the asynq backend this is a no-op; cmd/worker runs that work.
func (d *Dependencies) StartBackground(ctx context.Context) error {
	if d.DispatchPool == nil {
		return nil
	}

	bgCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.stopBackground = cancel

	if err := d.DispatchPool.Start(bgCtx); err != nil {
		cancel()
		return fmt.Errorf("failed to start dispatch pool: %w", err)
	}
	go d.Scheduler.Start(bgCtx)
	return nil
}

// Cleanup drains background work and closes all resources
func (d *Dependencies) Cleanup(ctx context.Context) {
	if d.DispatchPool != nil {
		if err := d.DispatchPool.Drain(ctx); err != nil {
			d.Logger.Error(ctx, "failed to drain dispatch pool", err)
		}
	}
	if d.stopBackground != nil {
		d.stopBackground()
	}
	if d.JobClient != nil {
		if err := d.JobClient.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close job client", err)
		}
	}
	if err := d.Redis.Close(); err != nil {
		d.Logger.Error(ctx, "failed to close redis", err)
	}
	if err := d.Store.Close(); err != nil {
		d.Logger.Error(ctx, "failed to close database", err)
	}
}
