package handler

import (
	"context"
	"net/http"
	"time"

	"review-server/internal/apierrors"
	authHandler "review-server/internal/auth/handler"
	"review-server/internal/observability"
	"review-server/internal/quota"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UsageReader returns the current usage summary of an account.
type UsageReader interface {
	Usage(ctx context.Context, accountID uuid.UUID, now time.Time) (quota.Usage, error)
}

type Handler struct {
	usage  UsageReader
	logger *observability.Logger
	now    func() time.Time
}

func New(usage UsageReader, logger *observability.Logger) Handler {
	return Handler{
		usage:  usage,
		logger: logger,
		now:    time.Now,
	}
}

// HandleGetUsage handles GET /api/protected/usage
func (h *Handler) HandleGetUsage(c *gin.Context) {
	ctx := c.Request.Context()

	accountID, ok := authHandler.AccountID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("unauthorized"))
		return
	}

	usage, err := h.usage.Usage(ctx, accountID, h.now())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, usage)
}
