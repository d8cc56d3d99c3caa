package processor

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"review-server/internal/clients/mail"
	"review-server/internal/observability"
	"review-server/internal/store"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// persistTimeout bounds each status write. Writes run detached from the job
// context so a cancelled or timed out job still leaves terminal states behind.
const persistTimeout = 10 * time.Second

// ErrDispatchCancelled is recorded on recipients reached after the job was cancelled.
var ErrDispatchCancelled = errors.New("dispatch cancelled before send")

// DispatchResult summarizes one dispatch run.
type DispatchResult struct {
	CampaignID uuid.UUID
	Attempted  int
	Sent       int
	Failed     int
	// Skipped is set when the campaign was not in sending status.
	Skipped bool
}

// Dispatch sends a sending campaign to every pending recipient. A failed
// recipient is recorded and never aborts the batch; the campaign moves to sent
// once every recipient has a terminal status.
func (p *CampaignProcessor) Dispatch(ctx context.Context, campaignID uuid.UUID) (DispatchResult, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "operation", Value: "dispatch_mailing_campaign"},
		observability.Field{Key: "campaign_id", Value: campaignID.String()},
	)
	result := DispatchResult{CampaignID: campaignID}

	campaign, err := p.store.GetMailingCampaignByID(ctx, campaignID)
	if err != nil {
		p.failBestEffort(ctx, campaignID, "failed to load campaign")
		return result, fmt.Errorf("failed to load campaign: %w", err)
	}
	if campaign.Status != string(store.MailingCampaignStatusSending) {
		p.logger.Info(observability.WithFields(ctx,
			observability.Field{Key: "status", Value: campaign.Status},
		), "campaign is not sending, skipping dispatch")
		result.Skipped = true
		return result, nil
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "account_id", Value: campaign.AccountID.String()})

	account, err := p.store.GetAccountByID(ctx, campaign.AccountID)
	if err != nil {
		p.failBestEffort(ctx, campaignID, "failed to load account")
		return result, fmt.Errorf("failed to load account: %w", err)
	}

	recipients, err := p.store.GetMailingRecipientsByStatus(ctx, campaignID, string(store.MailingRecipientStatusPending))
	if err != nil {
		p.failBestEffort(ctx, campaignID, "failed to load recipients")
		return result, fmt.Errorf("failed to load recipients: %w", err)
	}

	language, localize := "", false
	if account.Country != nil && p.localizer != nil {
		language, localize = p.localizer.LanguageFor(*account.Country)
	}
	strs := LayoutStrings()
	if localize {
		strs = p.localizer.Translate(ctx, strs, language)
	}

	var sent, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(p.config.Concurrency)

	for _, recipient := range recipients {
		recipient := recipient
		g.Go(func() error {
			recipientCtx := observability.WithFields(ctx,
				observability.Field{Key: "recipient_id", Value: recipient.ID.String()},
			)
			if ctx.Err() != nil {
				failed.Add(1)
				p.markFailed(recipientCtx, recipient.ID, fmt.Errorf("%w: %v", ErrDispatchCancelled, ctx.Err()))
				return nil
			}
			if err := p.sendToRecipient(recipientCtx, campaign, account, recipient, language, localize, strs); err != nil {
				failed.Add(1)
				p.markFailed(recipientCtx, recipient.ID, err)
				return nil
			}
			sent.Add(1)
			p.markSent(recipientCtx, recipient.ID)
			return nil
		})
	}
	_ = g.Wait()

	result.Attempted = len(recipients)
	result.Sent = int(sent.Load())
	result.Failed = int(failed.Load())

	persistCtx, cancel := p.persistContext(ctx)
	defer cancel()
	_, err = p.store.CompleteMailingCampaign(persistCtx, store.CompleteMailingCampaignParams{
		CampaignID: campaignID,
		AccountID:  campaign.AccountID,
		SentCount:  result.Sent,
		SentAt:     p.now(),
	})
	if err != nil {
		if errors.Is(err, store.ErrCampaignNotSending) {
			p.logger.Warn(ctx, "campaign left sending status during dispatch")
			return result, nil
		}
		p.failBestEffort(ctx, campaignID, "failed to complete campaign")
		return result, fmt.Errorf("failed to complete campaign: %w", err)
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "sent", Value: result.Sent},
		observability.Field{Key: "failed", Value: result.Failed},
	), "mailing campaign dispatched")
	return result, nil
}

// sendToRecipient renders and sends one email within the send timeout. Panics
// are turned into errors so one bad recipient cannot take down the run.
func (p *CampaignProcessor) sendToRecipient(
	ctx context.Context,
	campaign store.MailingCampaign,
	account store.Account,
	recipient store.MailingRecipient,
	language string,
	localize bool,
	strs map[string]string,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while sending: %v", r)
		}
	}()

	email := p.renderer.Personalize(campaign, recipient, account.CompanyName())
	if localize {
		translated := p.localizer.Translate(ctx, map[string]string{
			"subject":           email.Subject,
			"body":              email.Body,
			"body_without_link": email.BodyWithoutLink,
		}, language)
		email.Subject = translated["subject"]
		email.Body = translated["body"]
		email.BodyWithoutLink = translated["body_without_link"]
	}

	html, err := p.renderer.HTML(email, strs)
	if err != nil {
		return err
	}

	sendCtx, cancel := context.WithTimeout(ctx, p.config.SendTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("panic in email sender: %v", r)
			}
		}()
		done <- p.sender.Send(sendCtx, mail.Message{
			From:             p.config.FromAddress,
			To:               recipient.Email,
			Subject:          email.Subject,
			HTML:             html,
			Text:             email.Body,
			TrackingDisabled: true,
		})
	}()

	select {
	case err := <-done:
		return err
	case <-sendCtx.Done():
		return fmt.Errorf("send timed out after %s: %w", p.config.SendTimeout, sendCtx.Err())
	}
}

// persistContext keeps ctx values but not its cancellation.
func (p *CampaignProcessor) persistContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
}

func (p *CampaignProcessor) markSent(ctx context.Context, recipientID uuid.UUID) {
	sentAt := p.now()
	persistCtx, cancel := p.persistContext(ctx)
	defer cancel()
	if err := p.store.UpdateMailingRecipientStatus(persistCtx, recipientID, string(store.MailingRecipientStatusSent), nil, &sentAt); err != nil {
		p.logger.Error(ctx, "failed to mark recipient sent", err)
	}
}

func (p *CampaignProcessor) markFailed(ctx context.Context, recipientID uuid.UUID, sendErr error) {
	p.logger.Error(ctx, "failed to send campaign email", sendErr)
	msg := sendErr.Error()
	persistCtx, cancel := p.persistContext(ctx)
	defer cancel()
	if err := p.store.UpdateMailingRecipientStatus(persistCtx, recipientID, string(store.MailingRecipientStatusFailed), &msg, nil); err != nil {
		p.logger.Error(ctx, "failed to mark recipient failed", err)
	}
}
