package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Review is a customer satisfaction review.
type Review struct {
	ID                     uuid.UUID       `db:"id"`
	AccountID              uuid.UUID       `db:"account_id"`
	OrderID                *uuid.UUID      `db:"order_id"`
	BranchID               *uuid.UUID      `db:"branch_id"`
	RecipientID            *uuid.UUID      `db:"recipient_id"`
	Provenance             string          `db:"provenance"`
	Recommend              string          `db:"recommend"`
	MainRating             int             `db:"main_rating"`
	LogisticsRating        *int            `db:"logistics_rating"`
	CommunicationRating    *int            `db:"communication_rating"`
	WebsiteUsabilityRating *int            `db:"website_usability_rating"`
	CategoryRatings        CategoryRatings `db:"category_ratings"`
	Comment                string          `db:"comment"`
	CustomerName           *string         `db:"customer_name"`
	IsComplete             bool            `db:"is_complete"`
	IsPublished            bool            `db:"is_published"`
	IsFlaggedRed           bool            `db:"is_flagged_red"`
	CreatedAt              time.Time       `db:"created_at"`
	AutoPublishAt          *time.Time      `db:"auto_publish_at"`
	Reply                  *string         `db:"reply"`
	RepliedAt              *time.Time      `db:"replied_at"`
}

const reviewColumns = `id, account_id, order_id, branch_id, recipient_id, provenance, recommend,
main_rating, logistics_rating, communication_rating, website_usability_rating, category_ratings,
comment, customer_name, is_complete, is_published, is_flagged_red, created_at, auto_publish_at,
reply, replied_at`

// CreateReviewParams carries a fully derived review plus the usage charge that
// must succeed for it to be stored.
type CreateReviewParams struct {
	Review Review
	Charge UsageCharge
}

const sqlMarkRecipientReviewed = `
UPDATE mailing_recipients
SET status = 'reviewed', updated_at = NOW()
WHERE id = $1 AND status <> 'reviewed'
`

const sqlInsertReview = `
INSERT INTO reviews (id, account_id, order_id, branch_id, recipient_id, provenance, recommend,
	main_rating, logistics_rating, communication_rating, website_usability_rating, category_ratings,
	comment, customer_name, is_complete, is_published, is_flagged_red, created_at, auto_publish_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
RETURNING ` + reviewColumns

// CreateReview charges the usage counter and inserts the review in one
// transaction. If the counter is at its limit nothing is written.
func (s *Store) CreateReview(ctx context.Context, params CreateReviewParams) (Review, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.Error(ctx, "failed to begin transaction", err)
		return Review{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := chargeUsage(ctx, tx, params.Charge); err != nil {
		if errors.Is(err, ErrUsageLimitReached) {
			return Review{}, err
		}
		s.logger.Error(ctx, "failed to charge review usage", err)
		return Review{}, fmt.Errorf("failed to charge review usage: %w", err)
	}

	r := params.Review
	if r.RecipientID != nil {
		res, err := tx.ExecContext(ctx, sqlMarkRecipientReviewed, *r.RecipientID)
		if err != nil {
			s.logger.Error(ctx, "failed to mark recipient reviewed", err)
			return Review{}, fmt.Errorf("failed to mark recipient reviewed: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return Review{}, ErrRecipientAlreadyUsed
		}
	}

	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	var created Review
	err = tx.GetContext(ctx, &created, sqlInsertReview,
		r.ID,
		r.AccountID,
		r.OrderID,
		r.BranchID,
		r.RecipientID,
		r.Provenance,
		r.Recommend,
		r.MainRating,
		r.LogisticsRating,
		r.CommunicationRating,
		r.WebsiteUsabilityRating,
		r.CategoryRatings,
		r.Comment,
		r.CustomerName,
		r.IsComplete,
		r.IsPublished,
		r.IsFlaggedRed,
		r.CreatedAt,
		r.AutoPublishAt,
	)
	if err != nil {
		s.logger.Error(ctx, "failed to insert review", err)
		return Review{}, fmt.Errorf("failed to insert review: %w", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error(ctx, "failed to commit review", err)
		return Review{}, fmt.Errorf("failed to commit review: %w", err)
	}
	return created, nil
}

const sqlGetReviewByID = `
SELECT ` + reviewColumns + `
FROM reviews
WHERE id = $1 AND account_id = $2
`

func (s *Store) GetReviewByID(ctx context.Context, accountID, reviewID uuid.UUID) (Review, error) {
	var review Review
	err := s.db.GetContext(ctx, &review, sqlGetReviewByID, reviewID, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Review{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get review by id", err)
		return Review{}, fmt.Errorf("failed to get review by id: %w", err)
	}
	return review, nil
}

const sqlSetReviewReply = `
UPDATE reviews
SET reply = $3, replied_at = $4
WHERE id = $1 AND account_id = $2 AND reply IS NULL
RETURNING ` + reviewColumns

const sqlReviewHasReply = `
SELECT reply IS NOT NULL FROM reviews WHERE id = $1 AND account_id = $2
`

// SetReviewReply stores the reply once and charges the reply counter in the
// same transaction.
func (s *Store) SetReviewReply(ctx context.Context, accountID, reviewID uuid.UUID, reply string, repliedAt time.Time, charge UsageCharge) (Review, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.Error(ctx, "failed to begin transaction", err)
		return Review{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var review Review
	err = tx.GetContext(ctx, &review, sqlSetReviewReply, reviewID, accountID, reply, repliedAt)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Error(ctx, "failed to set review reply", err)
			return Review{}, fmt.Errorf("failed to set review reply: %w", err)
		}
		var hasReply bool
		if err := tx.GetContext(ctx, &hasReply, sqlReviewHasReply, reviewID, accountID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return Review{}, ErrNotFound
			}
			return Review{}, fmt.Errorf("failed to check review reply: %w", err)
		}
		return Review{}, ErrAlreadyReplied
	}

	if _, err := chargeUsage(ctx, tx, charge); err != nil {
		if errors.Is(err, ErrUsageLimitReached) {
			return Review{}, err
		}
		s.logger.Error(ctx, "failed to charge reply usage", err)
		return Review{}, fmt.Errorf("failed to charge reply usage: %w", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error(ctx, "failed to commit review reply", err)
		return Review{}, fmt.Errorf("failed to commit review reply: %w", err)
	}
	return review, nil
}

// Only complete, unpublished reviews with an elapsed deadline are touched, so
// a second run over the same data updates nothing.
const sqlPublishDueReviews = `
UPDATE reviews
SET is_published = TRUE
WHERE is_published = FALSE
  AND is_complete = TRUE
  AND auto_publish_at IS NOT NULL
  AND auto_publish_at <= $1
RETURNING id
`

// PublishDueReviews flips every due review to published and returns their ids.
func (s *Store) PublishDueReviews(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := s.db.SelectContext(ctx, &ids, sqlPublishDueReviews, now)
	if err != nil {
		s.logger.Error(ctx, "failed to publish due reviews", err)
		return nil, fmt.Errorf("failed to publish due reviews: %w", err)
	}
	return ids, nil
}

const sqlCountOfflineReviewsByBranch = `
SELECT COUNT(*) FROM reviews
WHERE branch_id = $1 AND created_at >= $2
`

// CountBranchReviewsSince counts reviews collected at a branch since a time.
func (s *Store) CountBranchReviewsSince(ctx context.Context, branchID uuid.UUID, since time.Time) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, sqlCountOfflineReviewsByBranch, branchID, since)
	if err != nil {
		s.logger.Error(ctx, "failed to count branch reviews", err)
		return 0, fmt.Errorf("failed to count branch reviews: %w", err)
	}
	return count, nil
}
