package handler

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

import (
	"context"
	"io"
	"net/http"

	"review-server/internal/apierrors"
	"review-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

const maxWebhookBodyBytes = 64 << 10

// WebhookProcessor applies verified Stripe events
type WebhookProcessor interface {
	HandleWebhook(ctx context.Context, event stripe.Event) error
}

type Handler struct {
	processor     WebhookProcessor
	webhookSecret string
	logger        *observability.Logger
}

func New(processor WebhookProcessor, webhookSecret string, logger *observability.Logger) Handler {
	return Handler{
		processor:     processor,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// HandleWebhook handles POST /api/billing/webhook
func (h *Handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "failed to read request body"))
		return
	}

	signatureHeader := c.GetHeader("Stripe-Signature")
	if signatureHeader == "" {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "missing Stripe-Signature header"))
		return
	}

	// only metadata is read, so events from older API versions are accepted
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, h.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		h.logger.Warn(ctx, "rejected webhook with invalid signature")
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "invalid webhook signature"))
		return
	}

	if err := h.processor.HandleWebhook(ctx, event); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success"})
}
