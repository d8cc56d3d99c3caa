package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// UsagePeriod is a calendar (year, month) bucket in UTC.
type UsagePeriod struct {
	Year  int
	Month int
}

// PeriodOf returns the usage period containing t.
func PeriodOf(t time.Time) UsagePeriod {
	u := t.UTC()
	return UsagePeriod{Year: u.Year(), Month: int(u.Month())}
}

// Start returns the first instant of the period.
func (p UsagePeriod) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// UsageCounter is one row per (account, period, kind).
type UsageCounter struct {
	AccountID uuid.UUID `db:"account_id"`
	Year      int       `db:"year"`
	Month     int       `db:"month"`
	Kind      string    `db:"kind"`
	Count     int       `db:"count"`
	UpdatedAt time.Time `db:"updated_at"`
}

// UsageCharge describes one conditional counter increment. A negative Limit
// means the counter is uncapped.
type UsageCharge struct {
	AccountID uuid.UUID
	Period    UsagePeriod
	Kind      string
	Limit     int
	Amount    int
}

// The insert branch only fires when the amount fits under the limit, and the
// update branch only fires while the stored count plus the amount stays under
// it. When neither fires no row is returned.
const sqlChargeUsageCounter = `
INSERT INTO usage_counters (account_id, year, month, kind, count)
SELECT $1, $2, $3, $4, $6
WHERE $5::int < 0 OR $6::int <= $5::int
ON CONFLICT (account_id, year, month, kind)
DO UPDATE SET count = usage_counters.count + EXCLUDED.count, updated_at = NOW()
WHERE $5::int < 0 OR usage_counters.count + EXCLUDED.count <= $5::int
RETURNING count
`

func chargeUsage(ctx context.Context, q sqlx.QueryerContext, charge UsageCharge) (int, error) {
	amount := charge.Amount
	if amount <= 0 {
		amount = 1
	}

	var count int
	err := sqlx.GetContext(ctx, q, &count, sqlChargeUsageCounter,
		charge.AccountID,
		charge.Period.Year,
		charge.Period.Month,
		charge.Kind,
		charge.Limit,
		amount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUsageLimitReached
		}
		return 0, err
	}
	return count, nil
}

// ChargeUsage atomically increments a counter if it stays within its limit and
// returns the new count. ErrUsageLimitReached leaves the counter unchanged.
func (s *Store) ChargeUsage(ctx context.Context, charge UsageCharge) (int, error) {
	count, err := chargeUsage(ctx, s.db, charge)
	if err != nil {
		if errors.Is(err, ErrUsageLimitReached) {
			return 0, err
		}
		s.logger.Error(ctx, "failed to charge usage counter", err)
		return 0, fmt.Errorf("failed to charge usage counter: %w", err)
	}
	return count, nil
}

const sqlGetUsageCounter = `
SELECT count FROM usage_counters
WHERE account_id = $1 AND year = $2 AND month = $3 AND kind = $4
`

// GetUsageCount returns the counter value, zero when the period has no row yet.
func (s *Store) GetUsageCount(ctx context.Context, accountID uuid.UUID, period UsagePeriod, kind string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, sqlGetUsageCounter, accountID, period.Year, period.Month, kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		s.logger.Error(ctx, "failed to get usage counter", err)
		return 0, fmt.Errorf("failed to get usage counter: %w", err)
	}
	return count, nil
}

const sqlGetUsageCounters = `
SELECT account_id, year, month, kind, count, updated_at
FROM usage_counters
WHERE account_id = $1 AND year = $2 AND month = $3
`

// GetUsageCounts returns every counter of the period keyed by kind.
func (s *Store) GetUsageCounts(ctx context.Context, accountID uuid.UUID, period UsagePeriod) (map[string]int, error) {
	var rows []UsageCounter
	err := s.db.SelectContext(ctx, &rows, sqlGetUsageCounters, accountID, period.Year, period.Month)
	if err != nil {
		s.logger.Error(ctx, "failed to get usage counters", err)
		return nil, fmt.Errorf("failed to get usage counters: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Kind] = r.Count
	}
	return counts, nil
}
