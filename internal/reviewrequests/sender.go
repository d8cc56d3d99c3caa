package reviewrequests

//go:generate go run go.uber.org/mock/mockgen@latest -source=sender.go -destination=mocks_test.go -package=reviewrequests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"review-server/internal/clients/mail"
	"review-server/internal/distlock"
	mailingProcessor "review-server/internal/mailing/processor"
	"review-server/internal/observability"
	"review-server/internal/store"

	"github.com/google/uuid"
)

const (
	lockKey = "orders:review_requests"

	// DefaultDelay is the wait between shipment and the review request.
	DefaultDelay = 5 * 24 * time.Hour
	// batchSize bounds one run. Orders left over, or whose send failed, are
	// picked up by the next run.
	batchSize          = 200
	defaultSendTimeout = 15 * time.Second
	markTimeout        = 10 * time.Second

	requestSubject = "We value your feedback! Please review your order"
)

// OrderStore finds orders due for a review request and flags them once sent
type OrderStore interface {
	GetOrdersDueForReviewEmail(ctx context.Context, shippedOnOrBefore time.Time, limit int) ([]store.Order, error)
	MarkOrderReviewEmailSent(ctx context.Context, orderID uuid.UUID) error
}

// EmailRenderer builds review links and the HTML layout shared with campaigns
type EmailRenderer interface {
	LinkForToken(token uuid.UUID) string
	HTML(email mailingProcessor.RenderedEmail, strs map[string]string) (string, error)
}

// Locker serializes runs across processes
type Locker interface {
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error
}

type Config struct {
	Delay       time.Duration
	Interval    time.Duration
	SendTimeout time.Duration
	FromAddress string
}

// Result counts one run's outcome.
type Result struct {
	Due    int
	Sent   int
	Failed int
}

// Sender emails each shipped order its review link once, a fixed delay after
// shipment. Click tracking is disabled so the tokenized link reaches the
// customer unchanged.
type Sender struct {
	store    OrderStore
	mail     mail.Sender
	renderer EmailRenderer
	locker   Locker
	cfg      Config
	logger   *observability.Logger
	now      func() time.Time
}

// New creates the sender. locker may be nil when only one process runs it.
func New(store OrderStore, mailer mail.Sender, renderer EmailRenderer, locker Locker, cfg Config, logger *observability.Logger) *Sender {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}
	return &Sender{
		store:    store,
		mail:     mailer,
		renderer: renderer,
		locker:   locker,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Cutoff is the latest shipment day whose orders are due at now.
func (s *Sender) Cutoff(now time.Time) time.Time {
	y, m, d := now.UTC().Add(-s.cfg.Delay).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// message renders the request for one order.
func (s *Sender) message(order store.Order) (mail.Message, error) {
	customerName := mailingProcessor.DefaultCustomerName
	if order.CustomerName != nil && strings.TrimSpace(*order.CustomerName) != "" {
		customerName = strings.TrimSpace(*order.CustomerName)
	}
	link := s.renderer.LinkForToken(order.ReviewToken)

	intro := fmt.Sprintf("Dear %s,\n\nThank you for your order (Order ID: %s). "+
		"Please take a moment to review your experience by clicking the link below:", customerName, order.OrderNumber)
	text := fmt.Sprintf("%s\n\n%s\n\nThank you!", intro, link)

	html, err := s.renderer.HTML(mailingProcessor.RenderedEmail{
		Subject:         requestSubject,
		Body:            text,
		BodyWithoutLink: intro,
		ReviewLink:      link,
	}, mailingProcessor.LayoutStrings())
	if err != nil {
		return mail.Message{}, err
	}

	to := ""
	if order.CustomerEmail != nil {
		to = strings.TrimSpace(*order.CustomerEmail)
	}
	return mail.Message{
		From:             s.cfg.FromAddress,
		To:               to,
		Subject:          requestSubject,
		HTML:             html,
		Text:             text,
		TrackingDisabled: true,
	}, nil
}

// SendDue emails every order due at now, up to one batch. An order whose
// send fails stays unflagged and is retried on the next run.
func (s *Sender) SendDue(ctx context.Context, now time.Time) (Result, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "operation", Value: "order_review_requests"})

	orders, err := s.store.GetOrdersDueForReviewEmail(ctx, s.Cutoff(now), batchSize)
	if err != nil {
		s.logger.Error(ctx, "failed to load orders due for review request", err)
		return Result{}, fmt.Errorf("failed to load orders due for review request: %w", err)
	}

	result := Result{Due: len(orders)}
	for _, order := range orders {
		if ctx.Err() != nil {
			break
		}
		orderCtx := observability.WithFields(ctx,
			observability.Field{Key: "order_id", Value: order.ID.String()},
			observability.Field{Key: "account_id", Value: order.AccountID.String()},
		)
		if err := s.sendOne(orderCtx, order); err != nil {
			s.logger.Error(orderCtx, "failed to send review request", err)
			result.Failed++
			continue
		}
		result.Sent++
	}

	if result.Due > 0 {
		s.logger.Info(ctx, fmt.Sprintf("review requests: %d due, %d sent, %d failed", result.Due, result.Sent, result.Failed))
	}
	s.logger.Metrics(ctx,
		observability.MetricField{Key: "review_requests_sent", Value: result.Sent},
		observability.MetricField{Key: "review_requests_failed", Value: result.Failed},
	)
	return result, ctx.Err()
}

func (s *Sender) sendOne(ctx context.Context, order store.Order) error {
	msg, err := s.message(order)
	if err != nil {
		return err
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.cfg.SendTimeout)
	err = s.mail.Send(sendCtx, msg)
	cancel()
	if err != nil {
		return err
	}

	// the email is out, so the flag must land even if the run is cancelled
	markCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), markTimeout)
	defer cancel()
	if err := s.store.MarkOrderReviewEmailSent(markCtx, order.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("sent but failed to flag order: %w", err)
	}
	return nil
}

// Name returns the job name
func (s *Sender) Name() string {
	return "orders_review_requests"
}

// Schedule returns how often the job runs in-process
func (s *Sender) Schedule() time.Duration {
	return s.cfg.Interval
}

// Run sends due requests under the distributed lock. A run already in
// progress elsewhere is not an error.
func (s *Sender) Run(ctx context.Context) error {
	run := func(ctx context.Context) error {
		_, err := s.SendDue(ctx, s.now())
		return err
	}
	if s.locker == nil {
		return run(ctx)
	}

	err := s.locker.WithLock(ctx, lockKey, s.cfg.Interval, run)
	if errors.Is(err, distlock.ErrNotAcquired) {
		s.logger.Info(ctx, "review requests already running elsewhere, skipping")
		return nil
	}
	return err
}
