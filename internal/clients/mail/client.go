package mail

import (
	"context"
	"errors"
	"fmt"

	"review-server/internal/config"
	"review-server/internal/observability"

	"github.com/resendlabs/resend-go"
)

var (
	ErrEmptyRecipient = errors.New("email recipient is empty")
	// ErrClickTrackingEnabled is returned for a TrackingDisabled message when
	// the provider would rewrite its links anyway.
	ErrClickTrackingEnabled = errors.New("sending domain has click tracking enabled")
)

// Message is one outbound email.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
	Text    string
	// TrackingDisabled keeps the provider from rewriting links in the body.
	TrackingDisabled bool
}

// Sender delivers a single message or returns the provider failure.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New returns the sender for the configured provider.
func New(ctx context.Context, cfg config.MailConfig, logger *observability.Logger) (Sender, error) {
	switch cfg.Provider {
	case config.MailProviderSES:
		return NewSESClient(ctx, cfg, logger)
	case config.MailProviderResend:
		return NewResendClient(cfg.ResendAPIKey, cfg.ResendClickTracking, logger)
	default:
		return nil, fmt.Errorf("%s: %w", cfg.Provider, config.ErrInvalidMailProvider)
	}
}

type ResendClient struct {
	client *resend.Client
	logger *observability.Logger
	// clickTracking mirrors the sending domain's Resend setting.
	clickTracking bool
}

func NewResendClient(apiKey string, clickTracking bool, logger *observability.Logger) (*ResendClient, error) {
	client := resend.NewClient(apiKey)
	if client == nil {
		return nil, fmt.Errorf("failed to create Resend client")
	}
	if clickTracking {
		logger.Warn(context.Background(), "resend domain tracks clicks, review request emails will be refused")
	}

	return &ResendClient{
		client:        client,
		logger:        logger,
		clickTracking: clickTracking,
	}, nil
}

// resendRequest builds the API request. Resend configures click tracking per
// sending domain, so TrackingDisabled is carried as a tag only and Send
// refuses such messages when the domain tracks clicks.
func resendRequest(msg Message) *resend.SendEmailRequest {
	req := &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}
	if msg.TrackingDisabled {
		req.Tags = []resend.Tag{{Name: "click_tracking", Value: "disabled"}}
	}
	return req
}

func (c *ResendClient) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrEmptyRecipient
	}
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_to", Value: msg.To},
		observability.Field{Key: "email_subject", Value: msg.Subject},
	)
	if msg.TrackingDisabled && c.clickTracking {
		c.logger.Error(ctx, "refusing to send untracked email", ErrClickTrackingEnabled)
		return ErrClickTrackingEnabled
	}

	res, err := c.client.Emails.Send(resendRequest(msg))
	if err != nil {
		c.logger.Error(ctx, "failed to send email", err)
		return fmt.Errorf("failed to send email via resend: %w", err)
	}

	c.logger.Info(observability.WithFields(ctx, observability.Field{Key: "message_id", Value: res.Id}), "email sent successfully")
	return nil
}
