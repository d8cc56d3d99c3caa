package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"review-server/internal/clients/mail"
	"review-server/internal/observability"
	"review-server/internal/plans"
	"review-server/internal/quota"
	"review-server/internal/rejection"
	"review-server/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrNoRecipients          = rejection.New(rejection.ValidationFailed, "no_recipients")
	ErrTooManyRecipients     = rejection.New(rejection.ValidationFailed, "too_many_recipients")
	ErrInvalidRecipientEmail = rejection.New(rejection.ValidationFailed, "invalid_recipient_email")
	ErrSubjectRequired       = rejection.New(rejection.ValidationFailed, "subject_required")
	ErrBodyRequired          = rejection.New(rejection.ValidationFailed, "body_required")
	ErrCampaignNotFound      = rejection.New(rejection.NotFound, "campaign_not_found")
)

// MailingStore defines the database operations required by CampaignProcessor
type MailingStore interface {
	GetAccountByID(ctx context.Context, accountID uuid.UUID) (store.Account, error)
	CreateMailingCampaign(ctx context.Context, params store.CreateMailingCampaignParams) (store.MailingCampaign, error)
	GetMailingCampaignByID(ctx context.Context, campaignID uuid.UUID) (store.MailingCampaign, error)
	GetMailingRecipientsByStatus(ctx context.Context, campaignID uuid.UUID, status string) ([]store.MailingRecipient, error)
	UpdateMailingRecipientStatus(ctx context.Context, recipientID uuid.UUID, status string, errorMessage *string, sentAt *time.Time) error
	CompleteMailingCampaign(ctx context.Context, params store.CompleteMailingCampaignParams) (store.MailingCampaign, error)
	FailMailingCampaign(ctx context.Context, campaignID uuid.UUID, errorMessage string) error
}

// LimitsReader resolves plan limits
type LimitsReader interface {
	LimitsFor(ctx context.Context, plan string) plans.Limits
}

// EmailSender delivers one email
type EmailSender interface {
	Send(ctx context.Context, msg mail.Message) error
}

// Localizer translates outbound strings; it never fails, it falls back to the input
type Localizer interface {
	LanguageFor(country string) (string, bool)
	Translate(ctx context.Context, strs map[string]string, language string) map[string]string
}

// DispatchEnqueuer schedules the asynchronous dispatch of a campaign
type DispatchEnqueuer interface {
	EnqueueCampaignDispatch(ctx context.Context, campaignID, accountID uuid.UUID, recipients int) error
}

// DispatchConfig bounds the per-recipient fan-out.
type DispatchConfig struct {
	Concurrency int
	SendTimeout time.Duration
	FromAddress string
}

func (c DispatchConfig) withDefaults() DispatchConfig {
	if c.Concurrency <= 0 {
		c.Concurrency = 10
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = 15 * time.Second
	}
	return c
}

type CampaignProcessor struct {
	store     MailingStore
	limits    LimitsReader
	sender    EmailSender
	localizer Localizer
	enqueuer  DispatchEnqueuer
	renderer  *Renderer
	validate  *validator.Validate
	config    DispatchConfig
	logger    *observability.Logger
	now       func() time.Time
}

func New(
	store MailingStore,
	limits LimitsReader,
	sender EmailSender,
	localizer Localizer,
	renderer *Renderer,
	config DispatchConfig,
	logger *observability.Logger,
) *CampaignProcessor {
	return &CampaignProcessor{
		store:     store,
		limits:    limits,
		sender:    sender,
		localizer: localizer,
		renderer:  renderer,
		validate:  validator.New(),
		config:    config.withDefaults(),
		logger:    logger,
		now:       time.Now,
	}
}

// SetEnqueuer wires the dispatch queue. The queue's workers call back into
// Dispatch, so it is set after construction.
func (p *CampaignProcessor) SetEnqueuer(enqueuer DispatchEnqueuer) {
	p.enqueuer = enqueuer
}

type RecipientRequest struct {
	Email        string
	CustomerName string
	OrderNumber  string
}

type CreateCampaignRequest struct {
	Subject    string
	Body       string
	Recipients []RecipientRequest
}

// normalizeRecipients validates addresses and drops case-insensitive duplicates,
// keeping the first occurrence.
func (p *CampaignProcessor) normalizeRecipients(recipients []RecipientRequest) ([]store.NewMailingRecipient, error) {
	seen := make(map[string]struct{}, len(recipients))
	out := make([]store.NewMailingRecipient, 0, len(recipients))
	for _, r := range recipients {
		email := strings.TrimSpace(r.Email)
		if err := p.validate.Var(email, "required,email"); err != nil {
			return nil, ErrInvalidRecipientEmail
		}
		key := strings.ToLower(email)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, store.NewMailingRecipient{
			Email:        email,
			CustomerName: strings.TrimSpace(r.CustomerName),
			OrderNumber:  strings.TrimSpace(r.OrderNumber),
			ReviewToken:  uuid.New(),
		})
	}
	return out, nil
}

// CreateCampaign stores a campaign with its recipients and queues its dispatch.
// The returned campaign is already in sending status.
func (p *CampaignProcessor) CreateCampaign(ctx context.Context, accountID uuid.UUID, req CreateCampaignRequest) (store.MailingCampaign, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "operation", Value: "create_mailing_campaign"},
		observability.Field{Key: "account_id", Value: accountID.String()},
	)

	if strings.TrimSpace(req.Subject) == "" {
		return store.MailingCampaign{}, ErrSubjectRequired
	}
	if strings.TrimSpace(req.Body) == "" {
		return store.MailingCampaign{}, ErrBodyRequired
	}

	recipients, err := p.normalizeRecipients(req.Recipients)
	if err != nil {
		return store.MailingCampaign{}, err
	}
	if len(recipients) == 0 {
		return store.MailingCampaign{}, ErrNoRecipients
	}

	account, err := p.store.GetAccountByID(ctx, accountID)
	if err != nil {
		return store.MailingCampaign{}, err
	}
	now := p.now()
	if !quota.IsPlanActive(account, now) && !quota.IsTrialActive(account, now) {
		return store.MailingCampaign{}, quota.ErrPlanInactive
	}
	if len(recipients) > p.limits.LimitsFor(ctx, account.Plan).EmailLimit {
		return store.MailingCampaign{}, ErrTooManyRecipients
	}

	campaign, err := p.store.CreateMailingCampaign(ctx, store.CreateMailingCampaignParams{
		AccountID:  accountID,
		Subject:    req.Subject,
		Body:       req.Body,
		Recipients: recipients,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateRecipientEmail) {
			return store.MailingCampaign{}, ErrInvalidRecipientEmail
		}
		return store.MailingCampaign{}, fmt.Errorf("failed to create mailing campaign: %w", err)
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaign.ID.String()})

	if p.enqueuer == nil {
		p.failBestEffort(ctx, campaign.ID, "dispatch queue not configured")
		return store.MailingCampaign{}, fmt.Errorf("failed to enqueue campaign dispatch: queue not configured")
	}
	if err := p.enqueuer.EnqueueCampaignDispatch(ctx, campaign.ID, accountID, campaign.RecipientsCount); err != nil {
		p.failBestEffort(ctx, campaign.ID, "failed to enqueue dispatch")
		return store.MailingCampaign{}, fmt.Errorf("failed to enqueue campaign dispatch: %w", err)
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "recipients_count", Value: campaign.RecipientsCount},
	), "mailing campaign created")
	return campaign, nil
}

// GetCampaign returns a campaign owned by the account.
func (p *CampaignProcessor) GetCampaign(ctx context.Context, accountID, campaignID uuid.UUID) (store.MailingCampaign, error) {
	campaign, err := p.store.GetMailingCampaignByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.MailingCampaign{}, ErrCampaignNotFound
		}
		return store.MailingCampaign{}, fmt.Errorf("failed to get mailing campaign: %w", err)
	}
	if campaign.AccountID != accountID {
		return store.MailingCampaign{}, ErrCampaignNotFound
	}
	return campaign, nil
}

// failBestEffort moves a campaign to failed; errors are logged and dropped
// because the campaign row may itself be unreachable.
func (p *CampaignProcessor) failBestEffort(ctx context.Context, campaignID uuid.UUID, reason string) {
	persistCtx, cancel := p.persistContext(ctx)
	defer cancel()
	if err := p.store.FailMailingCampaign(persistCtx, campaignID, reason); err != nil {
		p.logger.Error(ctx, "failed to mark campaign failed", err)
	}
}
