package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Account is the business that owns reviews, branches and campaigns.
type Account struct {
	ID               uuid.UUID  `db:"id"`
	Email            string     `db:"email"`
	BusinessName     *string    `db:"business_name"`
	BusinessCategory *string    `db:"business_category"`
	Country          *string    `db:"country"`
	Plan             string     `db:"plan"`
	PlanExpiration   *time.Time `db:"plan_expiration"`
	TrialStart       *time.Time `db:"trial_start"`
	TrialEnd         *time.Time `db:"trial_end"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

// CompanyName is the display name used in outbound emails.
func (a Account) CompanyName() string {
	if a.BusinessName != nil && *a.BusinessName != "" {
		return *a.BusinessName
	}
	return a.Email
}

const accountColumns = `id, email, business_name, business_category, country, plan,
plan_expiration, trial_start, trial_end, created_at, updated_at`

const sqlGetAccountByID = `
SELECT ` + accountColumns + `
FROM accounts
WHERE id = $1
`

func (s *Store) GetAccountByID(ctx context.Context, accountID uuid.UUID) (Account, error) {
	var account Account
	err := s.db.GetContext(ctx, &account, sqlGetAccountByID, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get account by id", err)
		return Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}
	return account, nil
}

const sqlUpdateAccountPlan = `
UPDATE accounts
SET plan = $2, plan_expiration = $3, updated_at = NOW()
WHERE id = $1
RETURNING ` + accountColumns

// UpdateAccountPlan sets the plan and its expiration.
func (s *Store) UpdateAccountPlan(ctx context.Context, accountID uuid.UUID, plan string, expiration *time.Time) (Account, error) {
	var account Account
	err := s.db.GetContext(ctx, &account, sqlUpdateAccountPlan, accountID, plan, expiration)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to update account plan", err)
		return Account{}, fmt.Errorf("failed to update account plan: %w", err)
	}
	return account, nil
}
