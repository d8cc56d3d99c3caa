package processor

import (
	"context"
	"sort"
	"sync"
	"time"

	"review-server/internal/store"

	"github.com/google/uuid"
)

type counterKey struct {
	accountID uuid.UUID
	period    store.UsagePeriod
	kind      string
}

// fakeStore is an in-memory store with the same atomicity as the SQL store:
// a review and its usage charge are applied together under one lock.
type fakeStore struct {
	mu         sync.Mutex
	accounts   map[uuid.UUID]store.Account
	counters   map[counterKey]int
	reviews    map[uuid.UUID]store.Review
	orders     map[uuid.UUID]store.Order
	branches   map[string]store.Branch
	recipients map[uuid.UUID]store.MailingRecipient
	campaigns  map[uuid.UUID]store.MailingCampaign
	creates    int
	lastFilter store.ReviewFilter
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:   map[uuid.UUID]store.Account{},
		counters:   map[counterKey]int{},
		reviews:    map[uuid.UUID]store.Review{},
		orders:     map[uuid.UUID]store.Order{},
		branches:   map[string]store.Branch{},
		recipients: map[uuid.UUID]store.MailingRecipient{},
		campaigns:  map[uuid.UUID]store.MailingCampaign{},
	}
}

func (f *fakeStore) addAccount(a store.Account) store.Account {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[a.ID] = a
	return a
}

func (f *fakeStore) setCounter(accountID uuid.UUID, period store.UsagePeriod, kind string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters[counterKey{accountID, period, kind}] = n
}

func (f *fakeStore) counter(accountID uuid.UUID, period store.UsagePeriod, kind string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counters[counterKey{accountID, period, kind}]
}

func (f *fakeStore) GetAccountByID(ctx context.Context, accountID uuid.UUID) (store.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[accountID]
	if !ok {
		return store.Account{}, store.ErrNotFound
	}
	return a, nil
}

func (f *fakeStore) UpdateAccountPlan(ctx context.Context, accountID uuid.UUID, plan string, expiration *time.Time) (store.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[accountID]
	if !ok {
		return store.Account{}, store.ErrNotFound
	}
	a.Plan = plan
	a.PlanExpiration = expiration
	f.accounts[accountID] = a
	return a, nil
}

func (f *fakeStore) GetUsageCount(ctx context.Context, accountID uuid.UUID, period store.UsagePeriod, kind string) (int, error) {
	return f.counter(accountID, period, kind), nil
}

func (f *fakeStore) GetUsageCounts(ctx context.Context, accountID uuid.UUID, period store.UsagePeriod) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]int{}
	for k, v := range f.counters {
		if k.accountID == accountID && k.period == period {
			out[k.kind] = v
		}
	}
	return out, nil
}

func (f *fakeStore) chargeLocked(charge store.UsageCharge) (int, error) {
	amount := charge.Amount
	if amount <= 0 {
		amount = 1
	}
	key := counterKey{charge.AccountID, charge.Period, charge.Kind}
	next := f.counters[key] + amount
	if charge.Limit >= 0 && next > charge.Limit {
		return 0, store.ErrUsageLimitReached
	}
	f.counters[key] = next
	return next, nil
}

func (f *fakeStore) ChargeUsage(ctx context.Context, charge store.UsageCharge) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.chargeLocked(charge)
}

func (f *fakeStore) CountActiveBranches(ctx context.Context, accountID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.branches {
		if b.AccountID == accountID && b.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) CreateReview(ctx context.Context, params store.CreateReviewParams) (store.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Check the recipient before charging so a refused write leaves no trace.
	r := params.Review
	if r.RecipientID != nil {
		if rec := f.recipients[*r.RecipientID]; rec.Status == string(store.MailingRecipientStatusReviewed) {
			return store.Review{}, store.ErrRecipientAlreadyUsed
		}
	}
	if _, err := f.chargeLocked(params.Charge); err != nil {
		return store.Review{}, err
	}
	if r.RecipientID != nil {
		rec := f.recipients[*r.RecipientID]
		rec.Status = string(store.MailingRecipientStatusReviewed)
		f.recipients[*r.RecipientID] = rec
	}
	f.reviews[r.ID] = r
	f.creates++
	return r, nil
}

func (f *fakeStore) GetReviewByID(ctx context.Context, accountID, reviewID uuid.UUID) (store.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reviews[reviewID]
	if !ok || r.AccountID != accountID {
		return store.Review{}, store.ErrNotFound
	}
	return r, nil
}

func fakeMatches(r store.Review, f store.ReviewFilter) bool {
	switch {
	case r.AccountID != f.AccountID:
		return false
	case f.MinRating != nil && r.MainRating < *f.MinRating:
		return false
	case f.MaxRating != nil && r.MainRating > *f.MaxRating:
		return false
	case f.Recommend != nil && r.Recommend != string(*f.Recommend):
		return false
	case f.Published != nil && r.IsPublished != *f.Published:
		return false
	case f.Flagged != nil && r.IsFlaggedRed != *f.Flagged:
		return false
	case f.CreatedFrom != nil && r.CreatedAt.Before(*f.CreatedFrom):
		return false
	case f.CreatedBefore != nil && !r.CreatedAt.Before(*f.CreatedBefore):
		return false
	}
	return true
}

func (f *fakeStore) ListReviews(ctx context.Context, filter store.ReviewFilter) (store.ListReviewsResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	var out []store.Review
	for _, r := range f.reviews {
		if fakeMatches(r, filter) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := len(out)
	if filter.Offset >= len(out) {
		return store.ListReviewsResult{TotalCount: total}, nil
	}
	out = out[filter.Offset:]
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return store.ListReviewsResult{Reviews: out, TotalCount: total}, nil
}

func (f *fakeStore) SetReviewReply(ctx context.Context, accountID, reviewID uuid.UUID, reply string, repliedAt time.Time, charge store.UsageCharge) (store.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reviews[reviewID]
	if !ok || r.AccountID != accountID {
		return store.Review{}, store.ErrNotFound
	}
	if r.Reply != nil {
		return store.Review{}, store.ErrAlreadyReplied
	}
	if _, err := f.chargeLocked(charge); err != nil {
		return store.Review{}, err
	}
	r.Reply = &reply
	r.RepliedAt = &repliedAt
	f.reviews[reviewID] = r
	return r, nil
}

func (f *fakeStore) GetOrderByReviewToken(ctx context.Context, token uuid.UUID) (store.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ReviewToken == token {
			return o, nil
		}
	}
	return store.Order{}, store.ErrNotFound
}

func (f *fakeStore) GetActiveBranchByToken(ctx context.Context, token string) (store.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.branches[token]
	if !ok || !b.IsActive {
		return store.Branch{}, store.ErrNotFound
	}
	return b, nil
}

func (f *fakeStore) GetMailingRecipientByReviewToken(ctx context.Context, token uuid.UUID) (store.MailingRecipient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.recipients {
		if r.ReviewToken == token {
			return r, nil
		}
	}
	return store.MailingRecipient{}, store.ErrNotFound
}

func (f *fakeStore) GetMailingCampaignByID(ctx context.Context, campaignID uuid.UUID) (store.MailingCampaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.campaigns[campaignID]
	if !ok {
		return store.MailingCampaign{}, store.ErrNotFound
	}
	return c, nil
}
