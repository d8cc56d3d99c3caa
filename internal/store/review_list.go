package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Review list orderings. The leading minus means descending.
const (
	ReviewSortNewest       = "-created_at"
	ReviewSortOldest       = "created_at"
	ReviewSortRatingHigh   = "-main_rating"
	ReviewSortRatingLow    = "main_rating"
	DefaultReviewSortOrder = ReviewSortNewest
)

var reviewOrderClauses = map[string]string{
	ReviewSortNewest:     "created_at DESC, id DESC",
	ReviewSortOldest:     "created_at ASC, id ASC",
	ReviewSortRatingHigh: "main_rating DESC, created_at DESC",
	ReviewSortRatingLow:  "main_rating ASC, created_at DESC",
}

// ValidReviewSort reports whether sort is a known ordering.
func ValidReviewSort(sort string) bool {
	_, ok := reviewOrderClauses[sort]
	return ok
}

// ReviewFilter narrows an account's review list. Nil fields do not filter.
type ReviewFilter struct {
	AccountID  uuid.UUID
	BranchID   *uuid.UUID
	Provenance *ReviewProvenance

	MinRating              *int
	MaxRating              *int
	LogisticsRating        *int
	CommunicationRating    *int
	WebsiteUsabilityRating *int
	Recommend              *Recommend

	// CreatedFrom is inclusive, CreatedBefore exclusive.
	CreatedFrom   *time.Time
	CreatedBefore *time.Time

	Published *bool
	Flagged   *bool
	Replied   *bool
	// Search matches the comment, the reviewer's name and the linked
	// order's number or customer name, case insensitively.
	Search string

	Sort   string
	Limit  int
	Offset int
}

// ListReviewsResult is one page of filtered reviews and the total match count.
type ListReviewsResult struct {
	Reviews    []Review
	TotalCount int
}

// whereClause renders the filter as a WHERE clause with positional args.
func (f ReviewFilter) whereClause() (string, []interface{}) {
	var b strings.Builder
	b.WriteString(" WHERE account_id = $1")
	args := []interface{}{f.AccountID}

	add := func(cond string, value interface{}) {
		args = append(args, value)
		b.WriteString(" AND ")
		b.WriteString(fmt.Sprintf(cond, len(args)))
	}

	if f.BranchID != nil {
		add("branch_id = $%d", *f.BranchID)
	}
	if f.Provenance != nil {
		add("provenance = $%d", string(*f.Provenance))
	}
	if f.MinRating != nil {
		add("main_rating >= $%d", *f.MinRating)
	}
	if f.MaxRating != nil {
		add("main_rating <= $%d", *f.MaxRating)
	}
	if f.LogisticsRating != nil {
		add("logistics_rating = $%d", *f.LogisticsRating)
	}
	if f.CommunicationRating != nil {
		add("communication_rating = $%d", *f.CommunicationRating)
	}
	if f.WebsiteUsabilityRating != nil {
		add("website_usability_rating = $%d", *f.WebsiteUsabilityRating)
	}
	if f.Recommend != nil {
		add("recommend = $%d", string(*f.Recommend))
	}
	if f.CreatedFrom != nil {
		add("created_at >= $%d", *f.CreatedFrom)
	}
	if f.CreatedBefore != nil {
		add("created_at < $%d", *f.CreatedBefore)
	}
	if f.Published != nil {
		add("is_published = $%d", *f.Published)
	}
	if f.Flagged != nil {
		add("is_flagged_red = $%d", *f.Flagged)
	}
	if f.Replied != nil {
		if *f.Replied {
			b.WriteString(" AND COALESCE(reply, '') <> ''")
		} else {
			b.WriteString(" AND COALESCE(reply, '') = ''")
		}
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		add(`(comment ILIKE $%[1]d OR customer_name ILIKE $%[1]d OR order_id IN (
	SELECT id FROM orders WHERE order_number ILIKE $%[1]d OR customer_name ILIKE $%[1]d))`, "%"+escapeLike(search)+"%")
	}
	return b.String(), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ListReviews returns one page of an account's reviews matching the filter.
func (s *Store) ListReviews(ctx context.Context, filter ReviewFilter) (ListReviewsResult, error) {
	order, ok := reviewOrderClauses[filter.Sort]
	if !ok {
		order = reviewOrderClauses[DefaultReviewSortOrder]
	}
	where, args := filter.whereClause()

	var totalCount int
	err := s.db.GetContext(ctx, &totalCount, "SELECT COUNT(*) FROM reviews"+where, args...)
	if err != nil {
		s.logger.Error(ctx, "failed to count reviews", err)
		return ListReviewsResult{}, fmt.Errorf("failed to count reviews: %w", err)
	}

	query := "SELECT " + reviewColumns + " FROM reviews" + where +
		fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", order, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	reviews := []Review{}
	if err := s.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		s.logger.Error(ctx, "failed to list reviews", err)
		return ListReviewsResult{}, fmt.Errorf("failed to list reviews: %w", err)
	}
	return ListReviewsResult{Reviews: reviews, TotalCount: totalCount}, nil
}
