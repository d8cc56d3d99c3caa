package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"review-server/internal/jobs"
	"review-server/internal/observability"

	"golang.org/x/sync/errgroup"
)

var (
	ErrPoolNotStarted   = errors.New("worker pool not started")
	ErrPoolRunning      = errors.New("worker pool already started")
	ErrPoolShuttingDown = errors.New("worker pool is shutting down")
	ErrDrainTimeout     = errors.New("drain timeout exceeded")
)

// Result is reported once per dispatch job the pool takes off the queue.
type Result struct {
	Job jobs.DispatchJobPayload
	Err error
}

// PoolConfig sizes the in-process dispatch pool.
type PoolConfig struct {
	Workers int
	// QueueSize bounds pending jobs; Submit waits for room.
	QueueSize    int
	DrainTimeout time.Duration
	// OnResult, when set, sees every processed job.
	OnResult func(Result)
}

func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Workers:      4,
		QueueSize:    100,
		DrainTimeout: 2 * time.Minute,
	}
}

func (c PoolConfig) withDefaults() PoolConfig {
	d := DefaultPoolConfig()
	if c.Workers <= 0 {
		c.Workers = d.Workers
	}
	if c.QueueSize <= 0 {
		c.QueueSize = d.QueueSize
	}
	if c.DrainTimeout <= 0 {
		c.DrainTimeout = d.DrainTimeout
	}
	return c
}

type poolState int

const (
	stateIdle poolState = iota
	stateRunning
	stateClosing
)

// dispatchPool runs campaign dispatches on a fixed set of goroutines.
// The queue channel is never closed: closing tells workers to finish the
// buffered jobs and exit, halt tells them to exit right away.
type dispatchPool struct {
	cfg       PoolConfig
	processor JobProcessor
	logger    *observability.Logger

	queue    chan jobs.DispatchJobPayload
	closing  chan struct{}
	halt     chan struct{}
	haltOnce sync.Once

	// Submit holds the read lock while it sends, so once Drain flips the
	// state under the write lock no job can land behind the workers.
	mu      sync.RWMutex
	state   poolState
	cancel  context.CancelFunc
	workers *errgroup.Group
}

func NewPool(cfg PoolConfig, processor JobProcessor, logger *observability.Logger) WorkerPool {
	cfg = cfg.withDefaults()
	return &dispatchPool{
		cfg:       cfg,
		processor: processor,
		logger:    logger,
		queue:     make(chan jobs.DispatchJobPayload, cfg.QueueSize),
		closing:   make(chan struct{}),
		halt:      make(chan struct{}),
	}
}

func (p *dispatchPool) logCtx(ctx context.Context) context.Context {
	return observability.WithFields(ctx,
		observability.Field{Key: "processor", Value: p.processor.Name()},
		observability.Field{Key: "workers", Value: p.cfg.Workers},
	)
}

func (p *dispatchPool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case p.state != stateIdle:
		return ErrPoolRunning
	case p.halted():
		return ErrPoolShuttingDown
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.workers = &errgroup.Group{}
	for id := 0; id < p.cfg.Workers; id++ {
		workerCtx := observability.WithFields(runCtx, observability.Field{Key: "worker_id", Value: id})
		p.workers.Go(func() error {
			p.run(workerCtx)
			return nil
		})
	}
	p.state = stateRunning

	p.logger.Info(p.logCtx(ctx), "dispatch pool started")
	return nil
}

func (p *dispatchPool) Submit(ctx context.Context, job jobs.DispatchJobPayload) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	switch p.state {
	case stateIdle:
		return ErrPoolNotStarted
	case stateClosing:
		return ErrPoolShuttingDown
	}

	select {
	case p.queue <- job:
		return nil
	case <-p.halt:
		return ErrPoolShuttingDown
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain refuses further jobs and waits up to DrainTimeout for the queue to
// empty, then halts whatever is still running.
func (p *dispatchPool) Drain(ctx context.Context) error {
	p.mu.Lock()
	if p.state != stateRunning {
		state := p.state
		p.mu.Unlock()
		if state == stateIdle {
			return ErrPoolNotStarted
		}
		return ErrPoolShuttingDown
	}
	p.state = stateClosing
	close(p.closing)
	workers := p.workers
	p.mu.Unlock()

	logCtx := observability.WithFields(p.logCtx(ctx), observability.Field{Key: "queued", Value: len(p.queue)})
	p.logger.Info(logCtx, "draining dispatch pool")

	finished := make(chan struct{})
	go func() {
		_ = workers.Wait()
		close(finished)
	}()

	timer := time.NewTimer(p.cfg.DrainTimeout)
	defer timer.Stop()

	select {
	case <-finished:
		p.logger.Info(logCtx, "dispatch pool drained")
		return nil
	case <-timer.C:
	case <-ctx.Done():
	}

	p.logger.Warn(logCtx, "dispatch pool did not drain in time, halting workers")
	p.Stop()
	return ErrDrainTimeout
}

func (p *dispatchPool) Stop() {
	p.haltOnce.Do(func() { close(p.halt) })

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
	if p.state == stateRunning {
		p.state = stateClosing
		close(p.closing)
	}
}

func (p *dispatchPool) halted() bool {
	select {
	case <-p.halt:
		return true
	default:
		return false
	}
}

func (p *dispatchPool) run(ctx context.Context) {
	for {
		select {
		case <-p.halt:
			return
		case <-ctx.Done():
			return
		case job := <-p.queue:
			p.handle(ctx, job)
		case <-p.closing:
			p.flush(ctx)
			return
		}
	}
}

// flush works off whatever is still buffered once the pool is closing.
func (p *dispatchPool) flush(ctx context.Context) {
	for {
		if p.halted() || ctx.Err() != nil {
			return
		}
		select {
		case job := <-p.queue:
			p.handle(ctx, job)
		default:
			return
		}
	}
}

func (p *dispatchPool) handle(ctx context.Context, job jobs.DispatchJobPayload) {
	jobCtx := observability.WithFields(ctx,
		observability.Field{Key: "campaign_id", Value: job.CampaignID},
		observability.Field{Key: "account_id", Value: job.AccountID},
	)

	err := p.safeProcess(jobCtx, job)
	if err != nil {
		p.logger.Error(jobCtx, "dispatch job failed", err)
	}
	if p.cfg.OnResult != nil {
		p.cfg.OnResult(Result{Job: job, Err: err})
	}
}

// safeProcess turns a processor panic into an error for that job only.
func (p *dispatchPool) safeProcess(ctx context.Context, job jobs.DispatchJobPayload) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic processing job: %v", r)
		}
	}()
	return p.processor.Process(ctx, job)
}
