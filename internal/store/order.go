package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Order is the minimal e-shop order an online review refers to.
type Order struct {
	ID            uuid.UUID `db:"id"`
	AccountID     uuid.UUID `db:"account_id"`
	OrderNumber   string    `db:"order_number"`
	CustomerName  *string   `db:"customer_name"`
	CustomerEmail *string   `db:"customer_email"`
	ReviewToken   uuid.UUID `db:"review_token"`
	// ShipmentDate is a calendar date; the review request goes out a few days after it.
	ShipmentDate    *time.Time `db:"shipment_date"`
	ReviewEmailSent bool       `db:"review_email_sent"`
	CreatedAt       time.Time  `db:"created_at"`
}

const orderColumns = `id, account_id, order_number, customer_name, customer_email, review_token,
shipment_date, review_email_sent, created_at`

const sqlGetOrderByReviewToken = `
SELECT ` + orderColumns + `
FROM orders
WHERE review_token = $1
`

func (s *Store) GetOrderByReviewToken(ctx context.Context, token uuid.UUID) (Order, error) {
	var order Order
	err := s.db.GetContext(ctx, &order, sqlGetOrderByReviewToken, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get order by review token", err)
		return Order{}, fmt.Errorf("failed to get order by review token: %w", err)
	}
	return order, nil
}

// Orders that shipped on or before the cutoff and were never asked for a
// review. Orders without an email address are skipped.
const sqlGetOrdersDueForReviewEmail = `
SELECT ` + orderColumns + `
FROM orders
WHERE review_email_sent = FALSE
  AND shipment_date IS NOT NULL
  AND shipment_date <= $1
  AND COALESCE(customer_email, '') <> ''
ORDER BY shipment_date ASC, id ASC
LIMIT $2
`

// GetOrdersDueForReviewEmail returns up to limit orders whose review request is due.
func (s *Store) GetOrdersDueForReviewEmail(ctx context.Context, shippedOnOrBefore time.Time, limit int) ([]Order, error) {
	orders := []Order{}
	err := s.db.SelectContext(ctx, &orders, sqlGetOrdersDueForReviewEmail, shippedOnOrBefore.Format(time.DateOnly), limit)
	if err != nil {
		s.logger.Error(ctx, "failed to get orders due for review email", err)
		return nil, fmt.Errorf("failed to get orders due for review email: %w", err)
	}
	return orders, nil
}

const sqlMarkOrderReviewEmailSent = `
UPDATE orders
SET review_email_sent = TRUE
WHERE id = $1 AND review_email_sent = FALSE
`

// MarkOrderReviewEmailSent flags the order so the request is not sent again.
// It returns ErrNotFound when the order is missing or already flagged.
func (s *Store) MarkOrderReviewEmailSent(ctx context.Context, orderID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, sqlMarkOrderReviewEmailSent, orderID)
	if err != nil {
		s.logger.Error(ctx, "failed to mark order review email sent", err)
		return fmt.Errorf("failed to mark order review email sent: %w", err)
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
