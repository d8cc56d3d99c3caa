package handler

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"review-server/internal/apierrors"
	authHandler "review-server/internal/auth/handler"
	"review-server/internal/observability"
	"review-server/internal/reviews/processor"
	"review-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReviewService is the review lifecycle as used over HTTP
type ReviewService interface {
	SubmitByToken(ctx context.Context, token string, req processor.SubmitReviewRequest) (store.Review, error)
	SubmitManual(ctx context.Context, accountID uuid.UUID, req processor.SubmitReviewRequest) (store.Review, error)
	Reply(ctx context.Context, accountID, reviewID uuid.UUID, text string) (store.Review, error)
	ListReviews(ctx context.Context, accountID uuid.UUID, query processor.ListReviewsQuery) (processor.ListReviewsResponse, error)
}

type Handler struct {
	service ReviewService
	logger  *observability.Logger
}

func New(service ReviewService, logger *observability.Logger) Handler {
	return Handler{
		service: service,
		logger:  logger,
	}
}

type CategoryRatingRequest struct {
	Field  string `json:"field" binding:"required"`
	Rating int    `json:"rating" binding:"required"`
}

type SubmitReviewRequest struct {
	Recommend              string                  `json:"recommend" binding:"required,oneof=yes no"`
	LogisticsRating        *int                    `json:"logisticsRating"`
	CommunicationRating    *int                    `json:"communicationRating"`
	WebsiteUsabilityRating *int                    `json:"websiteUsabilityRating"`
	CategoryRatings        []CategoryRatingRequest `json:"categoryRatings" binding:"dive"`
	Comment                string                  `json:"comment" binding:"max=5000"`
	CustomerName           string                  `json:"customerName" binding:"max=255"`
}

func (r SubmitReviewRequest) toProcessor() processor.SubmitReviewRequest {
	categories := make([]store.CategoryRating, 0, len(r.CategoryRatings))
	for _, c := range r.CategoryRatings {
		categories = append(categories, store.CategoryRating{Field: c.Field, Rating: c.Rating})
	}
	return processor.SubmitReviewRequest{
		Recommend: r.Recommend,
		Ratings: processor.Ratings{
			Logistics:        r.LogisticsRating,
			Communication:    r.CommunicationRating,
			WebsiteUsability: r.WebsiteUsabilityRating,
			Categories:       categories,
		},
		Comment:      r.Comment,
		CustomerName: r.CustomerName,
	}
}

// ListReviewsParams are the query parameters of the review list.
type ListReviewsParams struct {
	MinRating              *int   `form:"min_rating" binding:"omitempty,min=1,max=5"`
	MaxRating              *int   `form:"max_rating" binding:"omitempty,min=1,max=5"`
	LogisticsRating        *int   `form:"logistics_rating" binding:"omitempty,min=1,max=5"`
	CommunicationRating    *int   `form:"communication_rating" binding:"omitempty,min=1,max=5"`
	WebsiteUsabilityRating *int   `form:"website_usability_rating" binding:"omitempty,min=1,max=5"`
	Recommend              string `form:"recommend" binding:"omitempty,oneof=yes no"`
	StartDate              string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate                string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Status                 string `form:"status" binding:"omitempty,oneof=published unpublished"`
	Flagged                *bool  `form:"flagged"`
	Replied                *bool  `form:"replied"`
	Search                 string `form:"search" binding:"max=255"`
	SortBy                 string `form:"sort_by" binding:"omitempty,oneof=created_at -created_at main_rating -main_rating"`
}

func parseDay(s string) *time.Time {
	if s == "" {
		return nil
	}
	// format already checked by the binding
	day, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}
	return &day
}

func (p ListReviewsParams) toProcessor(page, limit int) processor.ListReviewsQuery {
	return processor.ListReviewsQuery{
		Page:                   page,
		Limit:                  limit,
		MinRating:              p.MinRating,
		MaxRating:              p.MaxRating,
		LogisticsRating:        p.LogisticsRating,
		CommunicationRating:    p.CommunicationRating,
		WebsiteUsabilityRating: p.WebsiteUsabilityRating,
		Recommend:              p.Recommend,
		StartDate:              parseDay(p.StartDate),
		EndDate:                parseDay(p.EndDate),
		Status:                 p.Status,
		Flagged:                p.Flagged,
		Replied:                p.Replied,
		Search:                 p.Search,
		SortBy:                 p.SortBy,
	}
}

type ReplyRequest struct {
	Reply string `json:"reply" binding:"max=5000"`
}

// HandleSubmitByToken handles POST /api/reviews/:token
func (h *Handler) HandleSubmitByToken(c *gin.Context) {
	ctx := c.Request.Context()

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	review, err := h.service.SubmitByToken(ctx, c.Param("token"), req.toProcessor())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// HandleSubmitManual handles POST /api/protected/reviews
func (h *Handler) HandleSubmitManual(c *gin.Context) {
	ctx := c.Request.Context()

	accountID, ok := authHandler.AccountID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("unauthorized"))
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	review, err := h.service.SubmitManual(ctx, accountID, req.toProcessor())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// HandleListReviews handles GET /api/protected/reviews
func (h *Handler) HandleListReviews(c *gin.Context) {
	ctx := c.Request.Context()

	accountID, ok := authHandler.AccountID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("unauthorized"))
		return
	}

	var params ListReviewsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	response, err := h.service.ListReviews(ctx, accountID, params.toProcessor(page, limit))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// HandleReply handles POST /api/protected/reviews/:review_id/reply
func (h *Handler) HandleReply(c *gin.Context) {
	ctx := c.Request.Context()

	accountID, ok := authHandler.AccountID(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("unauthorized"))
		return
	}

	reviewID, err := uuid.Parse(c.Param("review_id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid review ID format"))
		return
	}

	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	review, err := h.service.Reply(ctx, accountID, reviewID, req.Reply)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}
