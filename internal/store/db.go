package store

import (
	"errors"
	"fmt"

	"review-server/internal/observability"

	_ "github.com/jackc/pgx/v5/stdlib" // Import the pgx stdlib for sqlx
	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrUsageLimitReached means a conditional counter increment was refused.
	ErrUsageLimitReached       = errors.New("usage limit reached")
	ErrBranchLimitReached      = errors.New("branch limit reached")
	ErrAlreadyReplied          = errors.New("review already has a reply")
	ErrRecipientAlreadyUsed    = errors.New("recipient review token already used")
	ErrCampaignNotSending      = errors.New("campaign is not in sending status")
	ErrDuplicateRecipientEmail = errors.New("duplicate recipient email")
)

type Store struct {
	db     *sqlx.DB
	logger *observability.Logger
}

func New(connectionString string, logger *observability.Logger) (Store, error) {
	db, err := sqlx.Open("pgx", connectionString)
	if err != nil {
		return Store{}, fmt.Errorf("failed to open database: %w", err)
	}
	return Store{db: db, logger: logger}, nil
}

// NewFromDB wraps an existing connection, e.g. a sqlmock-backed one in tests.
func NewFromDB(db *sqlx.DB, logger *observability.Logger) Store {
	return Store{db: db, logger: logger}
}

// DB returns the underlying database connection
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the underlying connection pool
func (s *Store) Close() error {
	return s.db.Close()
}
