package handler

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

import (
	"context"
	"net/http"

	"review-server/internal/apierrors"
	authHandler "review-server/internal/auth/handler"
	"review-server/internal/mailing/processor"
	"review-server/internal/observability"
	"review-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CampaignService creates and reads mailing campaigns
type CampaignService interface {
	CreateCampaign(ctx context.Context, accountID uuid.UUID, req processor.CreateCampaignRequest) (store.MailingCampaign, error)
	GetCampaign(ctx context.Context, accountID, campaignID uuid.UUID) (store.MailingCampaign, error)
}

type Handler struct {
	service CampaignService
	logger  *observability.Logger
}

func New(service CampaignService, logger *observability.Logger) Handler {
	return Handler{
		service: service,
		logger:  logger,
	}
}

type RecipientRequest struct {
	Email        string `json:"email" binding:"required"`
	CustomerName string `json:"customerName" binding:"max=255"`
	OrderNumber  string `json:"orderNumber" binding:"max=100"`
}

type CreateCampaignRequest struct {
	Subject    string             `json:"subject" binding:"required,max=255"`
	Body       string             `json:"body" binding:"required,max=20000"`
	Recipients []RecipientRequest `json:"recipients" binding:"dive"`
}

// HandleCreateCampaign handles POST /api/protected/mailings
func (h *Handler) HandleCreateCampaign(c *gin.Context) {
	ctx := c.Request.Context()

	accountID, ok := authHandler.AccountID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("unauthorized"))
		return
	}

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	recipients := make([]processor.RecipientRequest, 0, len(req.Recipients))
	for _, r := range req.Recipients {
		recipients = append(recipients, processor.RecipientRequest{
			Email:        r.Email,
			CustomerName: r.CustomerName,
			OrderNumber:  r.OrderNumber,
		})
	}

	campaign, err := h.service.CreateCampaign(ctx, accountID, processor.CreateCampaignRequest{
		Subject:    req.Subject,
		Body:       req.Body,
		Recipients: recipients,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, campaign)
}

// HandleGetCampaign handles GET /api/protected/mailings/:campaign_id
func (h *Handler) HandleGetCampaign(c *gin.Context) {
	ctx := c.Request.Context()

	accountID, ok := authHandler.AccountID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("unauthorized"))
		return
	}

	campaignID, err := uuid.Parse(c.Param("campaign_id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid campaign ID format"))
		return
	}

	campaign, err := h.service.GetCampaign(ctx, accountID, campaignID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}
