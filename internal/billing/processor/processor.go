package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"review-server/internal/observability"
	"review-server/internal/quota"
	"review-server/internal/store"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
)

const (
	metadataAccountID = "account_id"
	metadataPlan      = "plan"
)

// PlanActivator switches an account onto a paid plan
type PlanActivator interface {
	ActivatePlan(ctx context.Context, accountID uuid.UUID, plan string, now time.Time) (store.Account, error)
}

type BillingProcessor struct {
	WebhookSecret string
	activator     PlanActivator
	logger        *observability.Logger
	now           func() time.Time
}

func New(webhookSecret string, activator PlanActivator, logger *observability.Logger) *BillingProcessor {
	return &BillingProcessor{
		WebhookSecret: webhookSecret,
		activator:     activator,
		logger:        logger,
		now:           time.Now,
	}
}

// HandleWebhook activates the purchased plan for successful payments. Events
// that cannot name an account or plan are acknowledged and logged; only
// storage failures are returned so Stripe retries them.
func (p *BillingProcessor) HandleWebhook(ctx context.Context, event stripe.Event) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "stripe_event_id", Value: event.ID},
		observability.Field{Key: "stripe_event_type", Value: string(event.Type)},
	)

	switch event.Type {
	case "payment_intent.succeeded":
		var paymentIntent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &paymentIntent); err != nil {
			p.logger.Error(ctx, "failed to unmarshal payment intent", err)
			return fmt.Errorf("failed to unmarshal payment intent: %w", err)
		}
		return p.activateFromMetadata(ctx, paymentIntent.Metadata, p.paidAt(event))

	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			p.logger.Error(ctx, "failed to unmarshal checkout session", err)
			return fmt.Errorf("failed to unmarshal checkout session: %w", err)
		}
		return p.activateFromMetadata(ctx, session.Metadata, p.paidAt(event))

	default:
		p.logger.Warn(ctx, fmt.Sprintf("Unhandled event type: %s", event.Type))
	}

	return nil
}

// paidAt anchors the plan period on the event's creation time, so a redelivered
// event recomputes the same expiration instead of extending it.
func (p *BillingProcessor) paidAt(event stripe.Event) time.Time {
	if event.Created > 0 {
		return time.Unix(event.Created, 0).UTC()
	}
	return p.now()
}

func (p *BillingProcessor) activateFromMetadata(ctx context.Context, metadata map[string]string, paidAt time.Time) error {
	accountID, err := uuid.Parse(metadata[metadataAccountID])
	if err != nil {
		p.logger.Warn(ctx, "payment event has no valid account_id metadata, ignoring")
		return nil
	}
	plan := metadata[metadataPlan]
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "account_id", Value: accountID},
		observability.Field{Key: "plan", Value: plan},
	)

	account, err := p.activator.ActivatePlan(ctx, accountID, plan, paidAt)
	switch {
	case errors.Is(err, quota.ErrUnknownPlan):
		p.logger.Warn(ctx, "payment event names an unknown plan, ignoring")
		return nil
	case errors.Is(err, store.ErrNotFound):
		p.logger.Warn(ctx, "payment event names an unknown account, ignoring")
		return nil
	case err != nil:
		p.logger.Error(ctx, "failed to activate plan", err)
		return fmt.Errorf("failed to activate plan: %w", err)
	}

	p.logger.Info(ctx, fmt.Sprintf("plan %s active until %s", account.Plan, account.PlanExpiration))
	return nil
}
