package quota

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=mocks_test.go -package=quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"review-server/internal/observability"
	"review-server/internal/plans"
	"review-server/internal/rejection"
	"review-server/internal/store"

	"github.com/google/uuid"
)

// PlanDuration is how long a paid plan stays active after activation.
const PlanDuration = 30 * 24 * time.Hour

// warningRatio is the share of a limit at which usage warnings are raised.
const warningRatio = 0.9

// QuotaStore defines the database operations required by Service
type QuotaStore interface {
	GetAccountByID(ctx context.Context, accountID uuid.UUID) (store.Account, error)
	GetUsageCount(ctx context.Context, accountID uuid.UUID, period store.UsagePeriod, kind string) (int, error)
	GetUsageCounts(ctx context.Context, accountID uuid.UUID, period store.UsagePeriod) (map[string]int, error)
	ChargeUsage(ctx context.Context, charge store.UsageCharge) (int, error)
	CountActiveBranches(ctx context.Context, accountID uuid.UUID) (int, error)
	UpdateAccountPlan(ctx context.Context, accountID uuid.UUID, plan string, expiration *time.Time) (store.Account, error)
}

var (
	ErrPlanInactive = rejection.New(rejection.QuotaExceeded, "plan_inactive")
	ErrLimitReached = rejection.New(rejection.QuotaExceeded, "limit_reached")
	ErrUnknownPlan  = errors.New("unknown plan")
)

// Service evaluates plan windows and owns the monthly usage counters.
type Service struct {
	store  QuotaStore
	logger *observability.Logger
}

// New creates a new quota Service
func New(store QuotaStore, logger *observability.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Decision is the outcome of a quota check.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Used    int    `json:"used"`
	Limit   int    `json:"limit"`
}

// Err returns the rejection matching a denied decision, nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	if d.Reason == ErrPlanInactive.Reason {
		return ErrPlanInactive
	}
	return ErrLimitReached
}

// IsPlanActive is true when the plan has no expiration or it has not passed.
func IsPlanActive(account store.Account, now time.Time) bool {
	return account.PlanExpiration == nil || !now.After(*account.PlanExpiration)
}

// IsTrialActive is true when a trial end is set and has not passed.
func IsTrialActive(account store.Account, now time.Time) bool {
	return account.TrialEnd != nil && !now.After(*account.TrialEnd)
}

// LimitsFor looks up a plan's limits. Unknown plans get Basic's limits and the
// fallback is logged.
func (s *Service) LimitsFor(ctx context.Context, plan string) plans.Limits {
	limits, known := plans.Lookup(plans.Plan(plan))
	if !known {
		s.logger.Warn(observability.WithFields(ctx,
			observability.Field{Key: "plan", Value: plan},
		), "unknown plan, falling back to basic limits")
	}
	return limits
}

// MayConsume reports whether the account may use one more unit of kind. An
// active trial only lifts the plan-inactive veto; it never raises the cap.
func (s *Service) MayConsume(ctx context.Context, account store.Account, kind plans.CounterKind, now time.Time) (Decision, error) {
	limit := s.LimitsFor(ctx, account.Plan).Limit(kind)

	if !IsPlanActive(account, now) && !IsTrialActive(account, now) {
		return Decision{Allowed: false, Reason: ErrPlanInactive.Reason, Limit: limit}, nil
	}

	used, err := s.store.GetUsageCount(ctx, account.ID, store.PeriodOf(now), string(kind))
	if err != nil {
		return Decision{}, fmt.Errorf("failed to read usage counter: %w", err)
	}

	if limit != plans.Unlimited && used >= limit {
		return Decision{Allowed: false, Reason: ErrLimitReached.Reason, Used: used, Limit: limit}, nil
	}
	return Decision{Allowed: true, Used: used, Limit: limit}, nil
}

// Charge builds the conditional increment for one unit of kind. The returned
// charge is applied by the store in the same transaction as the work it pays for.
func (s *Service) Charge(ctx context.Context, account store.Account, kind plans.CounterKind, now time.Time) (store.UsageCharge, error) {
	if !IsPlanActive(account, now) && !IsTrialActive(account, now) {
		return store.UsageCharge{}, ErrPlanInactive
	}
	return store.UsageCharge{
		AccountID: account.ID,
		Period:    store.PeriodOf(now),
		Kind:      string(kind),
		Limit:     s.LimitsFor(ctx, account.Plan).Limit(kind),
		Amount:    1,
	}, nil
}

// Increment atomically adds one unit of kind in the current period.
func (s *Service) Increment(ctx context.Context, account store.Account, kind plans.CounterKind, now time.Time) error {
	return s.IncrementBy(ctx, account, kind, now, 1)
}

// IncrementBy atomically adds n units. A capped counter that would exceed its
// limit is left unchanged and ErrLimitReached is returned.
func (s *Service) IncrementBy(ctx context.Context, account store.Account, kind plans.CounterKind, now time.Time, n int) error {
	if n <= 0 {
		return nil
	}
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "account_id", Value: account.ID.String()},
		observability.Field{Key: "counter", Value: string(kind)},
	)

	_, err := s.store.ChargeUsage(ctx, store.UsageCharge{
		AccountID: account.ID,
		Period:    store.PeriodOf(now),
		Kind:      string(kind),
		Limit:     s.LimitsFor(ctx, account.Plan).Limit(kind),
		Amount:    n,
	})
	if err != nil {
		if errors.Is(err, store.ErrUsageLimitReached) {
			return ErrLimitReached
		}
		s.logger.Error(ctx, "failed to increment usage counter", err)
		return fmt.Errorf("failed to increment usage counter: %w", err)
	}
	return nil
}

// MailingUsage is the per-period campaign accounting view.
type MailingUsage struct {
	Year         int `json:"year"`
	Month        int `json:"month"`
	MailingsSent int `json:"mailingsSent"`
	EmailsSent   int `json:"emailsSent"`
}

// Usage summarizes an account's plan, limits and current-period consumption.
type Usage struct {
	Plan                string       `json:"plan"`
	PlanActive          bool         `json:"planActive"`
	PlanExpiration      *time.Time   `json:"planExpiration,omitempty"`
	TrialActive         bool         `json:"trialActive"`
	TrialEnd            *time.Time   `json:"trialEnd,omitempty"`
	Limits              plans.Limits `json:"limits"`
	OnlineUsed          int          `json:"onlineUsed"`
	OfflineUsed         int          `json:"offlineUsed"`
	RepliesUsed         int          `json:"repliesUsed"`
	BranchCount         int          `json:"branchCount"`
	OnlineWarning       bool         `json:"onlineWarning"`
	OfflineWarning      bool         `json:"offlineWarning"`
	OnlineLimitReached  bool         `json:"onlineLimitReached"`
	OfflineLimitReached bool         `json:"offlineLimitReached"`
	ReplyLimitReached   bool         `json:"replyLimitReached"`
	BranchLimitReached  bool         `json:"branchLimitReached"`
	Mailing             MailingUsage `json:"mailing"`
}

// Usage returns the usage summary for the period containing now.
func (s *Service) Usage(ctx context.Context, accountID uuid.UUID, now time.Time) (Usage, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "operation", Value: "get_usage"},
		observability.Field{Key: "account_id", Value: accountID.String()},
	)

	account, err := s.store.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Usage{}, err
		}
		s.logger.Error(ctx, "failed to get account", err)
		return Usage{}, fmt.Errorf("failed to get account: %w", err)
	}

	period := store.PeriodOf(now)
	counts, err := s.store.GetUsageCounts(ctx, accountID, period)
	if err != nil {
		return Usage{}, fmt.Errorf("failed to get usage counters: %w", err)
	}
	branchCount, err := s.store.CountActiveBranches(ctx, accountID)
	if err != nil {
		return Usage{}, fmt.Errorf("failed to count branches: %w", err)
	}

	limits := s.LimitsFor(ctx, account.Plan)
	u := Usage{
		Plan:           account.Plan,
		PlanActive:     IsPlanActive(account, now),
		PlanExpiration: account.PlanExpiration,
		TrialActive:    IsTrialActive(account, now),
		TrialEnd:       account.TrialEnd,
		Limits:         limits,
		OnlineUsed:     counts[string(plans.CounterOnlineReview)],
		OfflineUsed:    counts[string(plans.CounterOfflineReview)],
		RepliesUsed:    counts[string(plans.CounterReply)],
		BranchCount:    branchCount,
		Mailing: MailingUsage{
			Year:         period.Year,
			Month:        period.Month,
			MailingsSent: counts[string(plans.CounterMailingSent)],
			EmailsSent:   counts[string(plans.CounterEmailSent)],
		},
	}
	u.OnlineWarning = nearLimit(u.OnlineUsed, limits.OnlineReviewLimit)
	u.OfflineWarning = nearLimit(u.OfflineUsed, limits.OfflineReviewLimit)
	u.OnlineLimitReached = u.OnlineUsed >= limits.OnlineReviewLimit
	u.OfflineLimitReached = u.OfflineUsed >= limits.OfflineReviewLimit
	u.ReplyLimitReached = u.RepliesUsed >= limits.ReplyLimit
	u.BranchLimitReached = u.BranchCount >= limits.MaxBranches

	return u, nil
}

func nearLimit(used, limit int) bool {
	return limit > 0 && float64(used) >= float64(limit)*warningRatio
}

// ActivatePlan switches the account to plan for PlanDuration starting at now.
func (s *Service) ActivatePlan(ctx context.Context, accountID uuid.UUID, plan string, now time.Time) (store.Account, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "operation", Value: "activate_plan"},
		observability.Field{Key: "account_id", Value: accountID.String()},
		observability.Field{Key: "plan", Value: plan},
	)

	p, ok := plans.Parse(plan)
	if !ok || p == plans.PlanExpired {
		s.logger.Warn(ctx, "refusing to activate unknown plan")
		return store.Account{}, fmt.Errorf("%s: %w", plan, ErrUnknownPlan)
	}

	expiration := now.Add(PlanDuration)
	account, err := s.store.UpdateAccountPlan(ctx, accountID, string(p), &expiration)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Account{}, err
		}
		s.logger.Error(ctx, "failed to activate plan", err)
		return store.Account{}, fmt.Errorf("failed to activate plan: %w", err)
	}

	s.logger.Info(ctx, "plan activated")
	return account, nil
}
