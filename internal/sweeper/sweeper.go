package sweeper

//go:generate go run go.uber.org/mock/mockgen@latest -source=sweeper.go -destination=mocks_test.go -package=sweeper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"review-server/internal/distlock"
	"review-server/internal/observability"

	"github.com/google/uuid"
)

const lockKey = "reviews:auto_publish"

// ReviewPublisher publishes every unpublished review whose deadline has passed
type ReviewPublisher interface {
	PublishDueReviews(ctx context.Context, now time.Time) ([]uuid.UUID, error)
}

// Locker serializes sweeps across processes
type Locker interface {
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error
}

// Sweeper publishes negative reviews once their reply window has elapsed.
// A missed run is harmless: the next one catches every overdue review.
type Sweeper struct {
	store    ReviewPublisher
	locker   Locker
	interval time.Duration
	logger   *observability.Logger
	now      func() time.Time
}

// New creates a sweeper. locker may be nil when only one process sweeps.
func New(store ReviewPublisher, locker Locker, interval time.Duration, logger *observability.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{
		store:    store,
		locker:   locker,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Sweep publishes all reviews due at now and returns how many were flipped
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) (int, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "operation", Value: "auto_publish_sweep"})

	ids, err := s.store.PublishDueReviews(ctx, now)
	if err != nil {
		s.logger.Error(ctx, "failed to publish due reviews", err)
		return 0, fmt.Errorf("failed to publish due reviews: %w", err)
	}

	if len(ids) > 0 {
		s.logger.Info(ctx, fmt.Sprintf("auto-published %d reviews", len(ids)))
	}
	s.logger.Metrics(ctx, observability.MetricField{Key: "reviews_auto_published", Value: len(ids)})
	return len(ids), nil
}

// Name returns the job name
func (s *Sweeper) Name() string {
	return "reviews_auto_publish"
}

// Schedule returns how often the sweep runs in-process
func (s *Sweeper) Schedule() time.Duration {
	return s.interval
}

// Run sweeps under the distributed lock. A sweep already running elsewhere
// is not an error.
func (s *Sweeper) Run(ctx context.Context) error {
	if s.locker == nil {
		_, err := s.Sweep(ctx, s.now())
		return err
	}

	err := s.locker.WithLock(ctx, lockKey, s.interval, func(ctx context.Context) error {
		_, err := s.Sweep(ctx, s.now())
		return err
	})
	if errors.Is(err, distlock.ErrNotAcquired) {
		s.logger.Info(ctx, "auto publish sweep already running elsewhere, skipping")
		return nil
	}
	return err
}
