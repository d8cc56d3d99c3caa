package handler

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

import (
	"context"
	"net/http"

	"review-server/internal/apierrors"
	authHandler "review-server/internal/auth/handler"
	"review-server/internal/branches/processor"
	"review-server/internal/observability"
	"review-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BranchService manages branches and their QR-code tokens
type BranchService interface {
	CreateBranch(ctx context.Context, accountID uuid.UUID, req processor.CreateBranchRequest) (store.Branch, error)
	ListBranches(ctx context.Context, accountID uuid.UUID) (processor.ListBranchesResponse, error)
	UpdateBranch(ctx context.Context, accountID, branchID uuid.UUID, req processor.UpdateBranchRequest) (store.Branch, error)
	DeleteBranch(ctx context.Context, accountID, branchID uuid.UUID) error
	ListBranchReviews(ctx context.Context, accountID, branchID uuid.UUID) (processor.BranchReviewsResponse, error)
	ValidateToken(ctx context.Context, token string) (processor.ValidateTokenResponse, error)
}

type Handler struct {
	service BranchService
	logger  *observability.Logger
}

func New(service BranchService, logger *observability.Logger) Handler {
	return Handler{
		service: service,
		logger:  logger,
	}
}

type CreateBranchRequest struct {
	Name            string `json:"name" binding:"required,max=255"`
	ExpectedReviews int    `json:"expectedReviews" binding:"min=0"`
}

type UpdateBranchRequest struct {
	Name            *string `json:"name" binding:"omitempty,max=255"`
	ExpectedReviews *int    `json:"expectedReviews" binding:"omitempty,min=0"`
}

// HandleCreateBranch handles POST /api/protected/branches
func (h *Handler) HandleCreateBranch(c *gin.Context) {
	ctx := c.Request.Context()

	accountID, ok := authHandler.AccountID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("unauthorized"))
		return
	}

	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	branch, err := h.service.CreateBranch(ctx, accountID, processor.CreateBranchRequest{
		Name:            req.Name,
		ExpectedReviews: req.ExpectedReviews,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, branch)
}

// HandleListBranches handles GET /api/protected/branches
func (h *Handler) HandleListBranches(c *gin.Context) {
	ctx := c.Request.Context()

	accountID, ok := authHandler.AccountID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("unauthorized"))
		return
	}

	response, err := h.service.ListBranches(ctx, accountID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// HandleUpdateBranch handles PUT /api/protected/branches/:branch_id
func (h *Handler) HandleUpdateBranch(c *gin.Context) {
	ctx := c.Request.Context()

	accountID, ok := authHandler.AccountID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("unauthorized"))
		return
	}

	branchID, err := uuid.Parse(c.Param("branch_id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid branch ID format"))
		return
	}

	var req UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	branch, err := h.service.UpdateBranch(ctx, accountID, branchID, processor.UpdateBranchRequest{
		Name:            req.Name,
		ExpectedReviews: req.ExpectedReviews,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, branch)
}

// HandleDeleteBranch handles DELETE /api/protected/branches/:branch_id
func (h *Handler) HandleDeleteBranch(c *gin.Context) {
	ctx := c.Request.Context()

	accountID, ok := authHandler.AccountID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("unauthorized"))
		return
	}

	branchID, err := uuid.Parse(c.Param("branch_id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid branch ID format"))
		return
	}

	if err := h.service.DeleteBranch(ctx, accountID, branchID); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// HandleListBranchReviews handles GET /api/protected/branches/:branch_id/reviews
func (h *Handler) HandleListBranchReviews(c *gin.Context) {
	ctx := c.Request.Context()

	accountID, ok := authHandler.AccountID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("unauthorized"))
		return
	}

	branchID, err := uuid.Parse(c.Param("branch_id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid branch ID format"))
		return
	}

	response, err := h.service.ListBranchReviews(ctx, accountID, branchID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// HandleValidateToken handles GET /api/offline/validate/:token
func (h *Handler) HandleValidateToken(c *gin.Context) {
	ctx := c.Request.Context()

	response, err := h.service.ValidateToken(ctx, c.Param("token"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
