package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"review-server/internal/observability"
	"review-server/internal/plans"
	"review-server/internal/quota"
	"review-server/internal/rejection"
	"review-server/internal/store"

	"github.com/google/uuid"
)

const (
	tokenBytes = 24
	// branchReviewsLimit caps the per-branch review list.
	branchReviewsLimit = 100
)

var (
	ErrBranchLimitReached     = rejection.New(rejection.QuotaExceeded, "branch_limit_reached")
	ErrNameRequired           = rejection.New(rejection.ValidationFailed, "name_required")
	ErrInvalidExpectedReviews = rejection.New(rejection.ValidationFailed, "invalid_expected_reviews")
	ErrBranchNotFound         = rejection.New(rejection.NotFound, "branch_not_found")
)

// BranchStore defines the database operations required by BranchProcessor
type BranchStore interface {
	GetAccountByID(ctx context.Context, accountID uuid.UUID) (store.Account, error)
	CreateBranch(ctx context.Context, params store.CreateBranchParams, maxBranches int) (store.Branch, error)
	GetActiveBranchesWithCounts(ctx context.Context, accountID uuid.UUID, since time.Time) ([]store.BranchWithReviewCount, error)
	GetActiveBranchByToken(ctx context.Context, token string) (store.Branch, error)
	UpdateBranch(ctx context.Context, accountID, branchID uuid.UUID, params store.UpdateBranchParams) (store.Branch, error)
	DeactivateBranch(ctx context.Context, accountID, branchID uuid.UUID) error
	GetBranchByID(ctx context.Context, accountID, branchID uuid.UUID) (store.Branch, error)
	ListReviews(ctx context.Context, filter store.ReviewFilter) (store.ListReviewsResult, error)
}

// QuotaReader is the read side of the quota service
type QuotaReader interface {
	LimitsFor(ctx context.Context, plan string) plans.Limits
	MayConsume(ctx context.Context, account store.Account, kind plans.CounterKind, now time.Time) (quota.Decision, error)
}

type BranchProcessor struct {
	store  BranchStore
	quota  QuotaReader
	logger *observability.Logger
	now    func() time.Time
}

func New(store BranchStore, quota QuotaReader, logger *observability.Logger) *BranchProcessor {
	return &BranchProcessor{
		store:  store,
		quota:  quota,
		logger: logger,
		now:    time.Now,
	}
}

type CreateBranchRequest struct {
	Name            string
	ExpectedReviews int
}

type UpdateBranchRequest struct {
	Name            *string
	ExpectedReviews *int
}

// ListBranchesResponse lists branches with this month's offline review counts.
type ListBranchesResponse struct {
	Branches    []store.BranchWithReviewCount `json:"branches"`
	MaxBranches int                           `json:"maxBranches"`
	CanAddMore  bool                          `json:"canAddMore"`
}

// ValidateTokenResponse is what a QR-code landing page needs to know.
type ValidateTokenResponse struct {
	BranchID            uuid.UUID `json:"branchId"`
	BranchName          string    `json:"branchName"`
	BusinessName        string    `json:"businessName"`
	BusinessCategory    *string   `json:"businessCategory,omitempty"`
	OfflineLimitReached bool      `json:"offlineLimitReached"`
}

// generateToken returns a random URL-safe branch token.
func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate branch token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (p *BranchProcessor) getAccount(ctx context.Context, accountID uuid.UUID) (store.Account, error) {
	account, err := p.store.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Account{}, err
		}
		p.logger.Error(ctx, "failed to get account", err)
		return store.Account{}, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// CreateBranch adds a branch unless the plan's branch limit is reached.
func (p *BranchProcessor) CreateBranch(ctx context.Context, accountID uuid.UUID, req CreateBranchRequest) (store.Branch, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "operation", Value: "create_branch"},
		observability.Field{Key: "account_id", Value: accountID.String()},
	)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return store.Branch{}, ErrNameRequired
	}
	if req.ExpectedReviews < 0 {
		return store.Branch{}, ErrInvalidExpectedReviews
	}

	account, err := p.getAccount(ctx, accountID)
	if err != nil {
		return store.Branch{}, err
	}
	now := p.now()
	if !quota.IsPlanActive(account, now) && !quota.IsTrialActive(account, now) {
		return store.Branch{}, quota.ErrPlanInactive
	}

	limits := p.quota.LimitsFor(ctx, account.Plan)
	if limits.MaxBranches <= 0 {
		return store.Branch{}, ErrBranchLimitReached
	}

	token, err := generateToken()
	if err != nil {
		p.logger.Error(ctx, "failed to generate branch token", err)
		return store.Branch{}, err
	}

	branch, err := p.store.CreateBranch(ctx, store.CreateBranchParams{
		AccountID:       accountID,
		Name:            name,
		Token:           token,
		ExpectedReviews: req.ExpectedReviews,
	}, limits.MaxBranches)
	if err != nil {
		if errors.Is(err, store.ErrBranchLimitReached) {
			return store.Branch{}, ErrBranchLimitReached
		}
		return store.Branch{}, fmt.Errorf("failed to create branch: %w", err)
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "branch_id", Value: branch.ID.String()},
	), "branch created")
	return branch, nil
}

// ListBranches returns the active branches of an account.
func (p *BranchProcessor) ListBranches(ctx context.Context, accountID uuid.UUID) (ListBranchesResponse, error) {
	account, err := p.getAccount(ctx, accountID)
	if err != nil {
		return ListBranchesResponse{}, err
	}

	since := store.PeriodOf(p.now()).Start()
	branches, err := p.store.GetActiveBranchesWithCounts(ctx, accountID, since)
	if err != nil {
		return ListBranchesResponse{}, fmt.Errorf("failed to list branches: %w", err)
	}
	if branches == nil {
		branches = []store.BranchWithReviewCount{}
	}

	maxBranches := p.quota.LimitsFor(ctx, account.Plan).MaxBranches
	return ListBranchesResponse{
		Branches:    branches,
		MaxBranches: maxBranches,
		CanAddMore:  len(branches) < maxBranches,
	}, nil
}

// UpdateBranch changes a branch's name or expected review count.
func (p *BranchProcessor) UpdateBranch(ctx context.Context, accountID, branchID uuid.UUID, req UpdateBranchRequest) (store.Branch, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "operation", Value: "update_branch"},
		observability.Field{Key: "branch_id", Value: branchID.String()},
	)

	params := store.UpdateBranchParams{ExpectedReviews: req.ExpectedReviews}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return store.Branch{}, ErrNameRequired
		}
		params.Name = &name
	}
	if req.ExpectedReviews != nil && *req.ExpectedReviews < 0 {
		return store.Branch{}, ErrInvalidExpectedReviews
	}

	branch, err := p.store.UpdateBranch(ctx, accountID, branchID, params)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Branch{}, ErrBranchNotFound
		}
		return store.Branch{}, fmt.Errorf("failed to update branch: %w", err)
	}
	return branch, nil
}

// DeleteBranch soft deletes a branch; its reviews are kept.
func (p *BranchProcessor) DeleteBranch(ctx context.Context, accountID, branchID uuid.UUID) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "operation", Value: "delete_branch"},
		observability.Field{Key: "branch_id", Value: branchID.String()},
	)

	if err := p.store.DeactivateBranch(ctx, accountID, branchID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrBranchNotFound
		}
		return fmt.Errorf("failed to delete branch: %w", err)
	}
	p.logger.Info(ctx, "branch deactivated")
	return nil
}

// BranchReviewsResponse holds the newest published offline reviews of a branch.
type BranchReviewsResponse struct {
	BranchID uuid.UUID      `json:"branchId"`
	Reviews  []store.Review `json:"reviews"`
}

// ListBranchReviews returns a branch's published offline reviews, newest
// first. Deactivated branches keep their reviews visible.
func (p *BranchProcessor) ListBranchReviews(ctx context.Context, accountID, branchID uuid.UUID) (BranchReviewsResponse, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "operation", Value: "list_branch_reviews"},
		observability.Field{Key: "branch_id", Value: branchID.String()},
	)

	if _, err := p.store.GetBranchByID(ctx, accountID, branchID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return BranchReviewsResponse{}, ErrBranchNotFound
		}
		return BranchReviewsResponse{}, fmt.Errorf("failed to get branch: %w", err)
	}

	offline := store.ReviewProvenanceOffline
	published := true
	result, err := p.store.ListReviews(ctx, store.ReviewFilter{
		AccountID:  accountID,
		BranchID:   &branchID,
		Provenance: &offline,
		Published:  &published,
		Sort:       store.ReviewSortNewest,
		Limit:      branchReviewsLimit,
	})
	if err != nil {
		return BranchReviewsResponse{}, fmt.Errorf("failed to list branch reviews: %w", err)
	}
	reviews := result.Reviews
	if reviews == nil {
		reviews = []store.Review{}
	}
	return BranchReviewsResponse{BranchID: branchID, Reviews: reviews}, nil
}

// ValidateToken resolves a QR-code token to its branch and business.
func (p *BranchProcessor) ValidateToken(ctx context.Context, token string) (ValidateTokenResponse, error) {
	branch, err := p.store.GetActiveBranchByToken(ctx, strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ValidateTokenResponse{}, ErrBranchNotFound
		}
		return ValidateTokenResponse{}, fmt.Errorf("failed to validate branch token: %w", err)
	}

	account, err := p.getAccount(ctx, branch.AccountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ValidateTokenResponse{}, ErrBranchNotFound
		}
		return ValidateTokenResponse{}, err
	}

	decision, err := p.quota.MayConsume(ctx, account, plans.CounterOfflineReview, p.now())
	if err != nil {
		return ValidateTokenResponse{}, fmt.Errorf("failed to check offline quota: %w", err)
	}

	return ValidateTokenResponse{
		BranchID:            branch.ID,
		BranchName:          branch.Name,
		BusinessName:        account.CompanyName(),
		BusinessCategory:    account.BusinessCategory,
		OfflineLimitReached: !decision.Allowed,
	}, nil
}
