package plans

import "strings"

// Plan is the subscription plan an account is on.
type Plan string

const (
	PlanBasic    Plan = "basic"
	PlanAdvanced Plan = "advanced"
	PlanPro      Plan = "pro"
	PlanUnique   Plan = "unique"
	PlanExpired  Plan = "expired"
)

// CounterKind identifies a monthly usage counter.
type CounterKind string

const (
	CounterOnlineReview  CounterKind = "online_review"
	CounterOfflineReview CounterKind = "offline_review"
	CounterReply         CounterKind = "reply"
	CounterMailingSent   CounterKind = "mailing_sent"
	CounterEmailSent     CounterKind = "email_sent"
)

// Unlimited marks a counter that is tracked but never capped.
const Unlimited = -1

// Limits holds the numeric caps for a plan.
type Limits struct {
	MaxBranches        int `json:"maxBranches"`
	OnlineReviewLimit  int `json:"onlineReviewLimit"`
	OfflineReviewLimit int `json:"offlineReviewLimit"`
	ReplyLimit         int `json:"replyLimit"`
	EmailLimit         int `json:"emailLimit"`
}

var table = map[Plan]Limits{
	PlanBasic:    {MaxBranches: 0, OnlineReviewLimit: 50, OfflineReviewLimit: 0, ReplyLimit: 25, EmailLimit: 0},
	PlanAdvanced: {MaxBranches: 3, OnlineReviewLimit: 250, OfflineReviewLimit: 100, ReplyLimit: 150, EmailLimit: 500},
	PlanPro:      {MaxBranches: 10, OnlineReviewLimit: 1000, OfflineReviewLimit: 500, ReplyLimit: 1000, EmailLimit: 2000},
	PlanUnique:   {MaxBranches: 50, OnlineReviewLimit: 5000, OfflineReviewLimit: 2500, ReplyLimit: 5000, EmailLimit: 10000},
	PlanExpired:  {},
}

var displayNames = map[Plan]string{
	PlanBasic:    "Basic",
	PlanAdvanced: "Advanced",
	PlanPro:      "Pro",
	PlanUnique:   "Unique",
	PlanExpired:  "Expired",
}

// Lookup returns the limits for a plan. ok is false when the plan is not in
// the table, in which case Basic's limits are returned.
func Lookup(plan Plan) (Limits, bool) {
	if limits, ok := table[plan]; ok {
		return limits, true
	}
	if limits, ok := table[Plan(strings.ToLower(string(plan)))]; ok {
		return limits, true
	}
	return table[PlanBasic], false
}

// Parse normalizes a stored plan string.
func Parse(s string) (Plan, bool) {
	p := Plan(strings.ToLower(strings.TrimSpace(s)))
	_, ok := table[p]
	return p, ok
}

// Valid reports whether the plan is a known plan.
func (p Plan) Valid() bool {
	_, ok := table[p]
	return ok
}

// DisplayName returns the human readable plan name.
func (p Plan) DisplayName() string {
	if name, ok := displayNames[p]; ok {
		return name
	}
	return displayNames[PlanBasic]
}

// Limit returns the cap for a counter kind.
func (l Limits) Limit(kind CounterKind) int {
	switch kind {
	case CounterOnlineReview:
		return l.OnlineReviewLimit
	case CounterOfflineReview:
		return l.OfflineReviewLimit
	case CounterReply:
		return l.ReplyLimit
	case CounterMailingSent, CounterEmailSent:
		return Unlimited
	default:
		return 0
	}
}

// SupportsOffline reports whether branches and offline reviews are available.
func (l Limits) SupportsOffline() bool {
	return l.MaxBranches > 0 && l.OfflineReviewLimit > 0
}
