package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Branch is a physical location collecting offline reviews through a QR code.
type Branch struct {
	ID              uuid.UUID `db:"id"`
	AccountID       uuid.UUID `db:"account_id"`
	Name            string    `db:"name"`
	Token           string    `db:"token"`
	ExpectedReviews int       `db:"expected_reviews"`
	IsActive        bool      `db:"is_active"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// BranchWithReviewCount adds the current period's review count.
type BranchWithReviewCount struct {
	Branch
	ReviewCount int `db:"review_count"`
}

type CreateBranchParams struct {
	AccountID       uuid.UUID
	Name            string
	Token           string
	ExpectedReviews int
}

type UpdateBranchParams struct {
	Name            *string
	ExpectedReviews *int
}

const branchColumns = `id, account_id, name, token, expected_reviews, is_active, created_at, updated_at`

const sqlLockAccount = `SELECT id FROM accounts WHERE id = $1 FOR UPDATE`

const sqlCountActiveBranches = `
SELECT COUNT(*) FROM branches WHERE account_id = $1 AND is_active = TRUE
`

const sqlInsertBranch = `
INSERT INTO branches (account_id, name, token, expected_reviews)
VALUES ($1, $2, $3, $4)
RETURNING ` + branchColumns

// CreateBranch inserts a branch unless the account already has maxBranches
// active ones. The account row is locked so concurrent creates serialize.
func (s *Store) CreateBranch(ctx context.Context, params CreateBranchParams, maxBranches int) (Branch, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.Error(ctx, "failed to begin transaction", err)
		return Branch{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var lockedID uuid.UUID
	if err := tx.GetContext(ctx, &lockedID, sqlLockAccount, params.AccountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Branch{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to lock account", err)
		return Branch{}, fmt.Errorf("failed to lock account: %w", err)
	}

	var active int
	if err := tx.GetContext(ctx, &active, sqlCountActiveBranches, params.AccountID); err != nil {
		s.logger.Error(ctx, "failed to count branches", err)
		return Branch{}, fmt.Errorf("failed to count branches: %w", err)
	}
	if active >= maxBranches {
		return Branch{}, ErrBranchLimitReached
	}

	var branch Branch
	err = tx.GetContext(ctx, &branch, sqlInsertBranch,
		params.AccountID,
		params.Name,
		params.Token,
		params.ExpectedReviews,
	)
	if err != nil {
		s.logger.Error(ctx, "failed to insert branch", err)
		return Branch{}, fmt.Errorf("failed to insert branch: %w", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error(ctx, "failed to commit branch", err)
		return Branch{}, fmt.Errorf("failed to commit branch: %w", err)
	}
	return branch, nil
}

func (s *Store) CountActiveBranches(ctx context.Context, accountID uuid.UUID) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, sqlCountActiveBranches, accountID)
	if err != nil {
		s.logger.Error(ctx, "failed to count active branches", err)
		return 0, fmt.Errorf("failed to count active branches: %w", err)
	}
	return count, nil
}

const sqlGetActiveBranchesWithCounts = `
SELECT b.id, b.account_id, b.name, b.token, b.expected_reviews, b.is_active, b.created_at, b.updated_at,
	COUNT(r.id) AS review_count
FROM branches b
LEFT JOIN reviews r ON r.branch_id = b.id AND r.created_at >= $2
WHERE b.account_id = $1 AND b.is_active = TRUE
GROUP BY b.id
ORDER BY b.created_at DESC
`

// GetActiveBranchesWithCounts lists active branches with reviews collected since a time.
func (s *Store) GetActiveBranchesWithCounts(ctx context.Context, accountID uuid.UUID, since time.Time) ([]BranchWithReviewCount, error) {
	branches := []BranchWithReviewCount{}
	err := s.db.SelectContext(ctx, &branches, sqlGetActiveBranchesWithCounts, accountID, since)
	if err != nil {
		s.logger.Error(ctx, "failed to get branches", err)
		return nil, fmt.Errorf("failed to get branches: %w", err)
	}
	return branches, nil
}

const sqlGetActiveBranchByToken = `
SELECT ` + branchColumns + `
FROM branches
WHERE token = $1 AND is_active = TRUE
`

func (s *Store) GetActiveBranchByToken(ctx context.Context, token string) (Branch, error) {
	var branch Branch
	err := s.db.GetContext(ctx, &branch, sqlGetActiveBranchByToken, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Branch{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get branch by token", err)
		return Branch{}, fmt.Errorf("failed to get branch by token: %w", err)
	}
	return branch, nil
}

const sqlGetBranchByID = `
SELECT ` + branchColumns + `
FROM branches
WHERE id = $1 AND account_id = $2
`

// GetBranchByID returns an account's branch, including deactivated ones.
func (s *Store) GetBranchByID(ctx context.Context, accountID, branchID uuid.UUID) (Branch, error) {
	var branch Branch
	err := s.db.GetContext(ctx, &branch, sqlGetBranchByID, branchID, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Branch{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get branch by id", err)
		return Branch{}, fmt.Errorf("failed to get branch by id: %w", err)
	}
	return branch, nil
}

const sqlUpdateBranch = `
UPDATE branches
SET name = COALESCE($3, name),
	expected_reviews = COALESCE($4, expected_reviews),
	updated_at = NOW()
WHERE id = $1 AND account_id = $2 AND is_active = TRUE
RETURNING ` + branchColumns

func (s *Store) UpdateBranch(ctx context.Context, accountID, branchID uuid.UUID, params UpdateBranchParams) (Branch, error) {
	var branch Branch
	err := s.db.GetContext(ctx, &branch, sqlUpdateBranch, branchID, accountID, params.Name, params.ExpectedReviews)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Branch{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to update branch", err)
		return Branch{}, fmt.Errorf("failed to update branch: %w", err)
	}
	return branch, nil
}

const sqlDeactivateBranch = `
UPDATE branches
SET is_active = FALSE, updated_at = NOW()
WHERE id = $1 AND account_id = $2 AND is_active = TRUE
`

// DeactivateBranch soft deletes a branch.
func (s *Store) DeactivateBranch(ctx context.Context, accountID, branchID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, sqlDeactivateBranch, branchID, accountID)
	if err != nil {
		s.logger.Error(ctx, "failed to deactivate branch", err)
		return fmt.Errorf("failed to deactivate branch: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
