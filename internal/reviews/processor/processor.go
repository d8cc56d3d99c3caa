package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"review-server/internal/observability"
	"review-server/internal/plans"
	"review-server/internal/quota"
	"review-server/internal/rejection"
	"review-server/internal/store"

	"github.com/google/uuid"
)

const (
	// AutoPublishDelay is how long a negative review stays unpublished.
	AutoPublishDelay = 7 * 24 * time.Hour
	// MinNegativeCommentLength is the minimum trimmed comment length, in
	// characters, of a negative review.
	MinNegativeCommentLength = 50

	defaultRating      = 5
	fallbackMainRating = 1
	minRating          = 1
	maxRating          = 5
)

var (
	ErrCommentTooShort     = rejection.New(rejection.ValidationFailed, "comment_too_short")
	ErrInvalidRating       = rejection.New(rejection.ValidationFailed, "invalid_rating")
	ErrUnknownRatingField  = rejection.New(rejection.ValidationFailed, "unknown_rating_field")
	ErrInvalidRecommend    = rejection.New(rejection.ValidationFailed, "invalid_recommend")
	ErrEmptyReply          = rejection.New(rejection.ValidationFailed, "empty_reply")
	ErrAlreadyReplied      = rejection.New(rejection.AlreadyReplied, "already_replied")
	ErrReviewNotFound      = rejection.New(rejection.NotFound, "review_not_found")
	ErrTokenNotFound       = rejection.New(rejection.NotFound, "token_not_found")
	ErrTokenAlreadyUsed    = rejection.New(rejection.NotEligible, "token_already_used")
	ErrOfflineNotSupported = rejection.New(rejection.NotEligible, "offline_not_supported")
	ErrInvalidRatingRange  = rejection.New(rejection.ValidationFailed, "invalid_rating_range")
	ErrInvalidDateRange    = rejection.New(rejection.ValidationFailed, "invalid_date_range")
	ErrInvalidStatus       = rejection.New(rejection.ValidationFailed, "invalid_status")
	ErrInvalidSort         = rejection.New(rejection.ValidationFailed, "invalid_sort")
)

// ReviewStore defines the database operations required by ReviewProcessor
type ReviewStore interface {
	GetAccountByID(ctx context.Context, accountID uuid.UUID) (store.Account, error)
	CreateReview(ctx context.Context, params store.CreateReviewParams) (store.Review, error)
	GetReviewByID(ctx context.Context, accountID, reviewID uuid.UUID) (store.Review, error)
	ListReviews(ctx context.Context, filter store.ReviewFilter) (store.ListReviewsResult, error)
	SetReviewReply(ctx context.Context, accountID, reviewID uuid.UUID, reply string, repliedAt time.Time, charge store.UsageCharge) (store.Review, error)
	GetOrderByReviewToken(ctx context.Context, token uuid.UUID) (store.Order, error)
	GetActiveBranchByToken(ctx context.Context, token string) (store.Branch, error)
	GetMailingRecipientByReviewToken(ctx context.Context, token uuid.UUID) (store.MailingRecipient, error)
	GetMailingCampaignByID(ctx context.Context, campaignID uuid.UUID) (store.MailingCampaign, error)
}

// QuotaGate is the part of the quota service the review lifecycle depends on
type QuotaGate interface {
	LimitsFor(ctx context.Context, plan string) plans.Limits
	MayConsume(ctx context.Context, account store.Account, kind plans.CounterKind, now time.Time) (quota.Decision, error)
	Charge(ctx context.Context, account store.Account, kind plans.CounterKind, now time.Time) (store.UsageCharge, error)
}

type ReviewProcessor struct {
	store  ReviewStore
	quota  QuotaGate
	logger *observability.Logger
	now    func() time.Time
}

func New(store ReviewStore, quota QuotaGate, logger *observability.Logger) *ReviewProcessor {
	return &ReviewProcessor{
		store:  store,
		quota:  quota,
		logger: logger,
		now:    time.Now,
	}
}

// SubmitReviewRequest is a review as sent by the customer.
type SubmitReviewRequest struct {
	Recommend    string  `json:"recommend"`
	Ratings      Ratings `json:"ratings"`
	Comment      string  `json:"comment"`
	CustomerName string  `json:"customerName"`
}

// Source is where a review came from.
type Source struct {
	Provenance  store.ReviewProvenance
	OrderID     *uuid.UUID
	BranchID    *uuid.UUID
	RecipientID *uuid.UUID
	// CustomerName is used when the request does not carry one.
	CustomerName *string
}

func counterFor(provenance store.ReviewProvenance) plans.CounterKind {
	if provenance == store.ReviewProvenanceOffline {
		return plans.CounterOfflineReview
	}
	return plans.CounterOnlineReview
}

// Submit validates a review, derives its ratings and publication state, and
// stores it while charging the account's monthly review counter.
func (p *ReviewProcessor) Submit(ctx context.Context, account store.Account, source Source, req SubmitReviewRequest) (store.Review, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "operation", Value: "submit_review"},
		observability.Field{Key: "account_id", Value: account.ID.String()},
		observability.Field{Key: "provenance", Value: string(source.Provenance)},
	)
	now := p.now().UTC()
	kind := counterFor(source.Provenance)

	decision, err := p.quota.MayConsume(ctx, account, kind, now)
	if err != nil {
		p.logger.Error(ctx, "failed to check review quota", err)
		return store.Review{}, fmt.Errorf("failed to check review quota: %w", err)
	}
	if !decision.Allowed {
		p.logger.Info(observability.WithFields(ctx,
			observability.Field{Key: "reason", Value: decision.Reason},
		), "review rejected by quota")
		return store.Review{}, decision.Err()
	}

	review, err := buildReview(account, source, req, now)
	if err != nil {
		return store.Review{}, err
	}

	charge, err := p.quota.Charge(ctx, account, kind, now)
	if err != nil {
		return store.Review{}, err
	}

	created, err := p.store.CreateReview(ctx, store.CreateReviewParams{Review: review, Charge: charge})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUsageLimitReached):
			p.logger.Info(ctx, "review rejected, last quota unit taken concurrently")
			return store.Review{}, quota.ErrLimitReached
		case errors.Is(err, store.ErrRecipientAlreadyUsed):
			return store.Review{}, ErrTokenAlreadyUsed
		default:
			p.logger.Error(ctx, "failed to create review", err)
			return store.Review{}, fmt.Errorf("failed to create review: %w", err)
		}
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "review_id", Value: created.ID.String()},
		observability.Field{Key: "recommend", Value: created.Recommend},
	), "review submitted")
	return created, nil
}

// buildReview is the pure part of Submit: validation, classification and the
// derived fields.
func buildReview(account store.Account, source Source, req SubmitReviewRequest, now time.Time) (store.Review, error) {
	recommend, ok := store.ParseRecommend(req.Recommend)
	if !ok {
		return store.Review{}, ErrInvalidRecommend
	}

	category, _ := LookupCategory(account.BusinessCategory)
	if err := validateRatings(category, req.Ratings); err != nil {
		return store.Review{}, err
	}

	review := store.Review{
		ID:           uuid.New(),
		AccountID:    account.ID,
		OrderID:      source.OrderID,
		BranchID:     source.BranchID,
		RecipientID:  source.RecipientID,
		Provenance:   string(source.Provenance),
		CustomerName: source.CustomerName,
		CreatedAt:    now,
	}
	if name := strings.TrimSpace(req.CustomerName); name != "" {
		review.CustomerName = &name
	}

	switch Classify(recommend, req.Ratings) {
	case store.RecommendYes:
		applyPositive(&review, category, req)
	default:
		if err := applyNegative(&review, req, now); err != nil {
			return store.Review{}, err
		}
	}
	return review, nil
}

func validateRatings(category Category, ratings Ratings) error {
	for _, v := range ratings.fixed() {
		if v < minRating || v > maxRating {
			return ErrInvalidRating
		}
	}
	seen := make(map[string]bool, len(ratings.Categories))
	for _, c := range ratings.Categories {
		if !category.declares(c.Field) || seen[c.Field] {
			return ErrUnknownRatingField
		}
		seen[c.Field] = true
		if c.Rating < minRating || c.Rating > maxRating {
			return ErrInvalidRating
		}
	}
	return nil
}

func applyPositive(review *store.Review, category Category, req SubmitReviewRequest) {
	review.Recommend = string(store.RecommendYes)
	review.LogisticsRating = ratingOrDefault(req.Ratings.Logistics)
	review.CommunicationRating = ratingOrDefault(req.Ratings.Communication)
	review.WebsiteUsabilityRating = ratingOrDefault(req.Ratings.WebsiteUsability)

	supplied := store.CategoryRatings(req.Ratings.Categories)
	ratings := make(store.CategoryRatings, 0, len(category.Fields))
	for _, field := range category.Fields {
		v, ok := supplied.Get(field)
		if !ok {
			v = defaultRating
		}
		ratings = append(ratings, store.CategoryRating{Field: field, Rating: v})
	}
	review.CategoryRatings = ratings

	if len(ratings) > 0 {
		values := make([]int, 0, len(ratings))
		for _, r := range ratings {
			values = append(values, r.Rating)
		}
		review.MainRating = meanRating(values)
	} else {
		review.MainRating = meanRating([]int{
			*review.LogisticsRating, *review.CommunicationRating, *review.WebsiteUsabilityRating,
		})
	}

	review.Comment = strings.TrimSpace(req.Comment)
	review.IsComplete = true
	review.IsFlaggedRed = false
	review.IsPublished = true
	review.AutoPublishAt = nil
}

func applyNegative(review *store.Review, req SubmitReviewRequest, now time.Time) error {
	comment := strings.TrimSpace(req.Comment)
	if utf8.RuneCountInString(comment) < MinNegativeCommentLength {
		return ErrCommentTooShort
	}

	review.Recommend = string(store.RecommendNo)
	review.LogisticsRating = req.Ratings.Logistics
	review.CommunicationRating = req.Ratings.Communication
	review.WebsiteUsabilityRating = req.Ratings.WebsiteUsability
	review.CategoryRatings = store.CategoryRatings(req.Ratings.Categories)

	switch {
	case len(req.Ratings.Categories) > 0:
		review.MainRating = meanRating(req.Ratings.categoryValues())
	case len(req.Ratings.fixed()) > 0:
		review.MainRating = meanRating(req.Ratings.fixed())
	default:
		review.MainRating = fallbackMainRating
	}

	publishAt := now.Add(AutoPublishDelay)
	review.Comment = comment
	review.IsFlaggedRed = true
	review.IsComplete = true
	review.IsPublished = false
	review.AutoPublishAt = &publishAt
	return nil
}

func ratingOrDefault(v *int) *int {
	r := defaultRating
	if v != nil {
		r = *v
	}
	return &r
}

// SubmitManual stores a review entered by the account owner.
func (p *ReviewProcessor) SubmitManual(ctx context.Context, accountID uuid.UUID, req SubmitReviewRequest) (store.Review, error) {
	account, err := p.store.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Review{}, err
		}
		p.logger.Error(ctx, "failed to get account", err)
		return store.Review{}, fmt.Errorf("failed to get account: %w", err)
	}
	return p.Submit(ctx, account, Source{Provenance: store.ReviewProvenanceManual}, req)
}

// SubmitByToken resolves a public review token and submits the review under the
// provenance the token belongs to: an order token is online, a mailing
// recipient token is manual and a branch token is offline.
func (p *ReviewProcessor) SubmitByToken(ctx context.Context, token string, req SubmitReviewRequest) (store.Review, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "operation", Value: "submit_review_by_token"})

	account, source, err := p.resolveToken(ctx, strings.TrimSpace(token))
	if err != nil {
		return store.Review{}, err
	}

	if source.Provenance == store.ReviewProvenanceOffline {
		if !p.quota.LimitsFor(ctx, account.Plan).SupportsOffline() {
			return store.Review{}, ErrOfflineNotSupported
		}
	}
	return p.Submit(ctx, account, source, req)
}

func (p *ReviewProcessor) resolveToken(ctx context.Context, token string) (store.Account, Source, error) {
	if id, err := uuid.Parse(token); err == nil {
		order, err := p.store.GetOrderByReviewToken(ctx, id)
		switch {
		case err == nil:
			account, err := p.account(ctx, order.AccountID)
			return account, Source{
				Provenance:   store.ReviewProvenanceOnline,
				OrderID:      &order.ID,
				CustomerName: order.CustomerName,
			}, err
		case !errors.Is(err, store.ErrNotFound):
			return store.Account{}, Source{}, fmt.Errorf("failed to resolve order token: %w", err)
		}

		recipient, err := p.store.GetMailingRecipientByReviewToken(ctx, id)
		switch {
		case err == nil:
			if recipient.Status == string(store.MailingRecipientStatusReviewed) {
				return store.Account{}, Source{}, ErrTokenAlreadyUsed
			}
			campaign, err := p.store.GetMailingCampaignByID(ctx, recipient.CampaignID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return store.Account{}, Source{}, ErrTokenNotFound
				}
				return store.Account{}, Source{}, fmt.Errorf("failed to resolve campaign: %w", err)
			}
			account, err := p.account(ctx, campaign.AccountID)
			return account, Source{
				Provenance:   store.ReviewProvenanceManual,
				RecipientID:  &recipient.ID,
				CustomerName: recipient.CustomerName,
			}, err
		case !errors.Is(err, store.ErrNotFound):
			return store.Account{}, Source{}, fmt.Errorf("failed to resolve recipient token: %w", err)
		}
	}

	branch, err := p.store.GetActiveBranchByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Account{}, Source{}, ErrTokenNotFound
		}
		return store.Account{}, Source{}, fmt.Errorf("failed to resolve branch token: %w", err)
	}
	account, err := p.account(ctx, branch.AccountID)
	return account, Source{
		Provenance: store.ReviewProvenanceOffline,
		BranchID:   &branch.ID,
	}, err
}

func (p *ReviewProcessor) account(ctx context.Context, accountID uuid.UUID) (store.Account, error) {
	account, err := p.store.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Account{}, ErrTokenNotFound
		}
		p.logger.Error(ctx, "failed to get account", err)
		return store.Account{}, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// Reply stores the account owner's single reply to a review.
func (p *ReviewProcessor) Reply(ctx context.Context, accountID, reviewID uuid.UUID, text string) (store.Review, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "operation", Value: "reply_to_review"},
		observability.Field{Key: "account_id", Value: accountID.String()},
		observability.Field{Key: "review_id", Value: reviewID.String()},
	)
	now := p.now().UTC()

	account, err := p.store.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Review{}, err
		}
		p.logger.Error(ctx, "failed to get account", err)
		return store.Review{}, fmt.Errorf("failed to get account: %w", err)
	}

	decision, err := p.quota.MayConsume(ctx, account, plans.CounterReply, now)
	if err != nil {
		p.logger.Error(ctx, "failed to check reply quota", err)
		return store.Review{}, fmt.Errorf("failed to check reply quota: %w", err)
	}
	if !decision.Allowed {
		return store.Review{}, decision.Err()
	}

	review, err := p.store.GetReviewByID(ctx, accountID, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Review{}, ErrReviewNotFound
		}
		p.logger.Error(ctx, "failed to get review", err)
		return store.Review{}, fmt.Errorf("failed to get review: %w", err)
	}
	if review.Reply != nil {
		return store.Review{}, ErrAlreadyReplied
	}

	reply := strings.TrimSpace(text)
	if reply == "" {
		return store.Review{}, ErrEmptyReply
	}

	charge, err := p.quota.Charge(ctx, account, plans.CounterReply, now)
	if err != nil {
		return store.Review{}, err
	}

	updated, err := p.store.SetReviewReply(ctx, accountID, reviewID, reply, now, charge)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyReplied):
			return store.Review{}, ErrAlreadyReplied
		case errors.Is(err, store.ErrNotFound):
			return store.Review{}, ErrReviewNotFound
		case errors.Is(err, store.ErrUsageLimitReached):
			return store.Review{}, quota.ErrLimitReached
		default:
			p.logger.Error(ctx, "failed to store reply", err)
			return store.Review{}, fmt.Errorf("failed to store reply: %w", err)
		}
	}

	p.logger.Info(ctx, "review replied")
	return updated, nil
}

const (
	defaultPageSize = 20
	maxPageSize     = 100

	StatusPublished   = "published"
	StatusUnpublished = "unpublished"
)

// ListReviewsQuery selects a page of an account's reviews. Zero values do
// not filter.
type ListReviewsQuery struct {
	Page  int
	Limit int

	MinRating              *int
	MaxRating              *int
	LogisticsRating        *int
	CommunicationRating    *int
	WebsiteUsabilityRating *int
	Recommend              string

	// StartDate and EndDate are calendar days in UTC, both inclusive.
	StartDate *time.Time
	EndDate   *time.Time

	Status  string
	Flagged *bool
	Replied *bool
	Search  string
	SortBy  string
}

// ListReviewsResponse is a page of an account's reviews.
type ListReviewsResponse struct {
	Reviews    []store.Review `json:"reviews"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalCount int            `json:"totalCount"`
	TotalPages int            `json:"totalPages"`
}

func checkRating(r *int) error {
	if r != nil && (*r < minRating || *r > maxRating) {
		return ErrInvalidRating
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// filter validates the query and turns it into a store filter.
func (q ListReviewsQuery) filter(accountID uuid.UUID) (store.ReviewFilter, error) {
	f := store.ReviewFilter{
		AccountID:              accountID,
		MinRating:              q.MinRating,
		MaxRating:              q.MaxRating,
		LogisticsRating:        q.LogisticsRating,
		CommunicationRating:    q.CommunicationRating,
		WebsiteUsabilityRating: q.WebsiteUsabilityRating,
		Flagged:                q.Flagged,
		Replied:                q.Replied,
		Search:                 q.Search,
		Sort:                   q.SortBy,
		Limit:                  q.Limit,
		Offset:                 (q.Page - 1) * q.Limit,
	}

	for _, r := range []*int{q.MinRating, q.MaxRating, q.LogisticsRating, q.CommunicationRating, q.WebsiteUsabilityRating} {
		if err := checkRating(r); err != nil {
			return store.ReviewFilter{}, err
		}
	}
	if q.MinRating != nil && q.MaxRating != nil && *q.MinRating > *q.MaxRating {
		return store.ReviewFilter{}, ErrInvalidRatingRange
	}

	if q.Recommend != "" {
		rec, ok := store.ParseRecommend(q.Recommend)
		if !ok {
			return store.ReviewFilter{}, ErrInvalidRecommend
		}
		f.Recommend = &rec
	}

	if q.StartDate != nil {
		from := startOfDay(*q.StartDate)
		f.CreatedFrom = &from
	}
	if q.EndDate != nil {
		before := startOfDay(*q.EndDate).AddDate(0, 0, 1)
		f.CreatedBefore = &before
	}
	if f.CreatedFrom != nil && f.CreatedBefore != nil && !f.CreatedFrom.Before(*f.CreatedBefore) {
		return store.ReviewFilter{}, ErrInvalidDateRange
	}

	switch q.Status {
	case "":
	case StatusPublished, StatusUnpublished:
		published := q.Status == StatusPublished
		f.Published = &published
	default:
		return store.ReviewFilter{}, ErrInvalidStatus
	}

	if f.Sort == "" {
		f.Sort = store.DefaultReviewSortOrder
	} else if !store.ValidReviewSort(f.Sort) {
		return store.ReviewFilter{}, ErrInvalidSort
	}
	return f, nil
}

// ListReviews returns a filtered page of the account's reviews, newest first
// unless another order is asked for.
func (p *ReviewProcessor) ListReviews(ctx context.Context, accountID uuid.UUID, query ListReviewsQuery) (ListReviewsResponse, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 || query.Limit > maxPageSize {
		query.Limit = defaultPageSize
	}

	filter, err := query.filter(accountID)
	if err != nil {
		return ListReviewsResponse{}, err
	}

	result, err := p.store.ListReviews(ctx, filter)
	if err != nil {
		p.logger.Error(ctx, "failed to list reviews", err)
		return ListReviewsResponse{}, fmt.Errorf("failed to list reviews: %w", err)
	}
	reviews := result.Reviews
	if reviews == nil {
		reviews = []store.Review{}
	}
	return ListReviewsResponse{
		Reviews:    reviews,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalCount: result.TotalCount,
		TotalPages: (result.TotalCount + query.Limit - 1) / query.Limit,
	}, nil
}
