package handler

import (
	"context"
	"net/http"
	"strings"

	"review-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccountIDKey is the gin context key holding the authenticated account ID.
const AccountIDKey = "Account-ID"

// TokenValidator resolves a session token to an account.
type TokenValidator interface {
	ValidateJWTToken(ctx context.Context, token string) (uuid.UUID, error)
}

type Handler struct {
	validator TokenValidator
	logger    *observability.Logger
}

func New(validator TokenValidator, logger *observability.Logger) Handler {
	return Handler{
		validator: validator,
		logger:    logger,
	}
}

func (h *Handler) HandleJWTMiddleware(c *gin.Context) {
	ctx := c.Request.Context()
	tokenHeader := c.GetHeader("Authorization")

	if tokenHeader == "" || !strings.HasPrefix(tokenHeader, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is missing or invalid"})
		c.Abort()
		return
	}

	tokenString := strings.TrimPrefix(tokenHeader, "Bearer ")

	accountID, err := h.validator.ValidateJWTToken(ctx, tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	c.Set(AccountIDKey, accountID.String())
	ctx = observability.WithFields(ctx, observability.Field{Key: "account_id", Value: accountID.String()})
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

// AccountID reads the authenticated account from the gin context.
func AccountID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(AccountIDKey)
	if !exists {
		return uuid.Nil, false
	}
	str, ok := value.(string)
	if !ok {
		return uuid.Nil, false
	}
	accountID, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, false
	}
	return accountID, true
}
