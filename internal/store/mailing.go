package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"review-server/internal/plans"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// MailingCampaign is a bulk review-request email campaign.
type MailingCampaign struct {
	ID              uuid.UUID  `db:"id"`
	AccountID       uuid.UUID  `db:"account_id"`
	Subject         string     `db:"subject"`
	Body            string     `db:"body"`
	Status          string     `db:"status"`
	RecipientsCount int        `db:"recipients_count"`
	SentCount       int        `db:"sent_count"`
	DeliveredCount  int        `db:"delivered_count"`
	ErrorMessage    *string    `db:"error_message"`
	SentAt          *time.Time `db:"sent_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// MailingRecipient is one addressee of a campaign.
type MailingRecipient struct {
	ID           uuid.UUID  `db:"id"`
	CampaignID   uuid.UUID  `db:"campaign_id"`
	Email        string     `db:"email"`
	CustomerName *string    `db:"customer_name"`
	OrderNumber  *string    `db:"order_number"`
	ReviewToken  uuid.UUID  `db:"review_token"`
	Status       string     `db:"status"`
	ErrorMessage *string    `db:"error_message"`
	SentAt       *time.Time `db:"sent_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// NewMailingRecipient is a recipient entry before it is stored.
type NewMailingRecipient struct {
	Email        string
	CustomerName string
	OrderNumber  string
	ReviewToken  uuid.UUID
}

type CreateMailingCampaignParams struct {
	AccountID  uuid.UUID
	Subject    string
	Body       string
	Recipients []NewMailingRecipient
}

// CompleteMailingCampaignParams finishes a campaign and records its usage.
type CompleteMailingCampaignParams struct {
	CampaignID uuid.UUID
	AccountID  uuid.UUID
	SentCount  int
	SentAt     time.Time
}

const campaignColumns = `id, account_id, subject, body, status, recipients_count, sent_count,
delivered_count, error_message, sent_at, created_at, updated_at`

const recipientColumns = `id, campaign_id, email, customer_name, order_number, review_token, status,
error_message, sent_at, created_at, updated_at`

const sqlInsertMailingCampaign = `
INSERT INTO mailing_campaigns (account_id, subject, body, status, recipients_count)
VALUES ($1, $2, $3, 'sending', $4)
RETURNING ` + campaignColumns

const sqlInsertMailingRecipients = `
INSERT INTO mailing_recipients (campaign_id, email, customer_name, order_number, review_token)
SELECT $1, u.email, NULLIF(u.customer_name, ''), NULLIF(u.order_number, ''), u.review_token::uuid
FROM UNNEST($2::text[], $3::text[], $4::text[], $5::text[])
	AS u(email, customer_name, order_number, review_token)
`

// CreateMailingCampaign stores the campaign in sending status together with all
// of its recipients. Either everything is written or nothing is.
func (s *Store) CreateMailingCampaign(ctx context.Context, params CreateMailingCampaignParams) (MailingCampaign, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.Error(ctx, "failed to begin transaction", err)
		return MailingCampaign{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var campaign MailingCampaign
	err = tx.GetContext(ctx, &campaign, sqlInsertMailingCampaign,
		params.AccountID,
		params.Subject,
		params.Body,
		len(params.Recipients),
	)
	if err != nil {
		s.logger.Error(ctx, "failed to insert mailing campaign", err)
		return MailingCampaign{}, fmt.Errorf("failed to insert mailing campaign: %w", err)
	}

	emails := make([]string, len(params.Recipients))
	names := make([]string, len(params.Recipients))
	orders := make([]string, len(params.Recipients))
	tokens := make([]string, len(params.Recipients))
	for i, r := range params.Recipients {
		emails[i] = r.Email
		names[i] = r.CustomerName
		orders[i] = r.OrderNumber
		token := r.ReviewToken
		if token == uuid.Nil {
			token = uuid.New()
		}
		tokens[i] = token.String()
	}

	_, err = tx.ExecContext(ctx, sqlInsertMailingRecipients,
		campaign.ID,
		pq.Array(emails),
		pq.Array(names),
		pq.Array(orders),
		pq.Array(tokens),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return MailingCampaign{}, ErrDuplicateRecipientEmail
		}
		s.logger.Error(ctx, "failed to insert mailing recipients", err)
		return MailingCampaign{}, fmt.Errorf("failed to insert mailing recipients: %w", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error(ctx, "failed to commit mailing campaign", err)
		return MailingCampaign{}, fmt.Errorf("failed to commit mailing campaign: %w", err)
	}
	return campaign, nil
}

const sqlGetMailingCampaignByID = `
SELECT ` + campaignColumns + `
FROM mailing_campaigns
WHERE id = $1
`

func (s *Store) GetMailingCampaignByID(ctx context.Context, campaignID uuid.UUID) (MailingCampaign, error) {
	var campaign MailingCampaign
	err := s.db.GetContext(ctx, &campaign, sqlGetMailingCampaignByID, campaignID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return MailingCampaign{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get mailing campaign", err)
		return MailingCampaign{}, fmt.Errorf("failed to get mailing campaign: %w", err)
	}
	return campaign, nil
}

const sqlGetMailingRecipientsByStatus = `
SELECT ` + recipientColumns + `
FROM mailing_recipients
WHERE campaign_id = $1 AND status = $2
ORDER BY created_at, id
`

// GetMailingRecipientsByStatus lists a campaign's recipients in one status.
func (s *Store) GetMailingRecipientsByStatus(ctx context.Context, campaignID uuid.UUID, status string) ([]MailingRecipient, error) {
	recipients := []MailingRecipient{}
	err := s.db.SelectContext(ctx, &recipients, sqlGetMailingRecipientsByStatus, campaignID, status)
	if err != nil {
		s.logger.Error(ctx, "failed to get mailing recipients", err)
		return nil, fmt.Errorf("failed to get mailing recipients: %w", err)
	}
	return recipients, nil
}

const sqlGetMailingRecipientByReviewToken = `
SELECT ` + recipientColumns + `
FROM mailing_recipients
WHERE review_token = $1
`

func (s *Store) GetMailingRecipientByReviewToken(ctx context.Context, token uuid.UUID) (MailingRecipient, error) {
	var recipient MailingRecipient
	err := s.db.GetContext(ctx, &recipient, sqlGetMailingRecipientByReviewToken, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return MailingRecipient{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get mailing recipient by token", err)
		return MailingRecipient{}, fmt.Errorf("failed to get mailing recipient by token: %w", err)
	}
	return recipient, nil
}

// A dispatcher only moves recipients out of pending; later tracking states are
// never overwritten.
const sqlUpdateMailingRecipientStatus = `
UPDATE mailing_recipients
SET status = $2, error_message = $3, sent_at = $4, updated_at = NOW()
WHERE id = $1 AND status = 'pending'
`

func (s *Store) UpdateMailingRecipientStatus(ctx context.Context, recipientID uuid.UUID, status string, errorMessage *string, sentAt *time.Time) error {
	_, err := s.db.ExecContext(ctx, sqlUpdateMailingRecipientStatus, recipientID, status, errorMessage, sentAt)
	if err != nil {
		s.logger.Error(ctx, "failed to update mailing recipient status", err)
		return fmt.Errorf("failed to update mailing recipient status: %w", err)
	}
	return nil
}

const sqlCompleteMailingCampaign = `
UPDATE mailing_campaigns
SET status = 'sent', sent_count = $2, delivered_count = $2, sent_at = $3, updated_at = NOW()
WHERE id = $1 AND status = 'sending'
RETURNING ` + campaignColumns

// CompleteMailingCampaign moves a sending campaign to sent and, in the same
// transaction, adds one to mailing_sent and SentCount to email_sent.
func (s *Store) CompleteMailingCampaign(ctx context.Context, params CompleteMailingCampaignParams) (MailingCampaign, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.Error(ctx, "failed to begin transaction", err)
		return MailingCampaign{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var campaign MailingCampaign
	err = tx.GetContext(ctx, &campaign, sqlCompleteMailingCampaign, params.CampaignID, params.SentCount, params.SentAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return MailingCampaign{}, ErrCampaignNotSending
		}
		s.logger.Error(ctx, "failed to complete mailing campaign", err)
		return MailingCampaign{}, fmt.Errorf("failed to complete mailing campaign: %w", err)
	}

	period := PeriodOf(params.SentAt)
	charges := []UsageCharge{
		{AccountID: params.AccountID, Period: period, Kind: string(plans.CounterMailingSent), Limit: plans.Unlimited, Amount: 1},
	}
	if params.SentCount > 0 {
		charges = append(charges, UsageCharge{
			AccountID: params.AccountID, Period: period, Kind: string(plans.CounterEmailSent), Limit: plans.Unlimited, Amount: params.SentCount,
		})
	}
	for _, charge := range charges {
		if _, err := chargeUsage(ctx, tx, charge); err != nil {
			s.logger.Error(ctx, "failed to record mailing usage", err)
			return MailingCampaign{}, fmt.Errorf("failed to record mailing usage: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error(ctx, "failed to commit campaign completion", err)
		return MailingCampaign{}, fmt.Errorf("failed to commit campaign completion: %w", err)
	}
	return campaign, nil
}

const sqlFailMailingCampaign = `
UPDATE mailing_campaigns
SET status = 'failed', error_message = $2, updated_at = NOW()
WHERE id = $1 AND status IN ('draft', 'sending')
`

// FailMailingCampaign marks a non-terminal campaign failed.
func (s *Store) FailMailingCampaign(ctx context.Context, campaignID uuid.UUID, errorMessage string) error {
	_, err := s.db.ExecContext(ctx, sqlFailMailingCampaign, campaignID, errorMessage)
	if err != nil {
		s.logger.Error(ctx, "failed to mark mailing campaign failed", err)
		return fmt.Errorf("failed to mark mailing campaign failed: %w", err)
	}
	return nil
}
