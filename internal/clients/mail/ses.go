package mail

import (
	"context"
	"fmt"

	"review-server/internal/config"
	"review-server/internal/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESClient sends email through AWS SES v2.
type SESClient struct {
	client *sesv2.Client
	// configurationSet is used for messages that must not have links rewritten.
	configurationSet string
	logger           *observability.Logger
}

// NewSESClient falls back to the default AWS credential chain when no static
// keys are configured.
func NewSESClient(ctx context.Context, cfg config.MailConfig, logger *observability.Logger) (*SESClient, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.SESRegion)}
	if cfg.SESAccessKey != "" && cfg.SESSecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.SESAccessKey, cfg.SESSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return &SESClient{
		client:           sesv2.NewFromConfig(awsCfg),
		configurationSet: cfg.SESConfigurationSet,
		logger:           logger,
	}, nil
}

func sesInput(msg Message, configurationSet string) *sesv2.SendEmailInput {
	body := &types.Body{
		Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")},
	}
	if msg.Text != "" {
		body.Text = &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")}
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(msg.From),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body:    body,
			},
		},
	}
	if msg.TrackingDisabled && configurationSet != "" {
		input.ConfigurationSetName = aws.String(configurationSet)
	}
	return input
}

func (c *SESClient) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrEmptyRecipient
	}
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_to", Value: msg.To},
		observability.Field{Key: "email_subject", Value: msg.Subject},
	)

	result, err := c.client.SendEmail(ctx, sesInput(msg, c.configurationSet))
	if err != nil {
		c.logger.Error(ctx, "failed to send email", err)
		return fmt.Errorf("failed to send email via sesv2: %w", err)
	}

	messageID := ""
	if result.MessageId != nil {
		messageID = *result.MessageId
	}
	c.logger.Info(observability.WithFields(ctx, observability.Field{Key: "message_id", Value: messageID}), "email sent successfully")
	return nil
}
