package store

import (
	"context"
	"fmt"
	"os"
	"testing"

	"review-server/internal/observability"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// TestDB wraps a Postgres database used by integration tests.
type TestDB struct {
	db    *sqlx.DB
	Store Store
}

// SetupTestDB connects to the Postgres instance described by TEST_DB_* and
// skips the test when TEST_DB_HOST is not set. The schema is expected to be
// applied by Flyway from migrations/.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	dbHost := os.Getenv("TEST_DB_HOST")
	if dbHost == "" {
		t.Skip("TEST_DB_HOST not set, skipping database integration test")
	}
	dbPort := getenvDefault("TEST_DB_PORT", "5432")
	dbUser := getenvDefault("TEST_DB_USER", "review_user")
	dbPass := getenvDefault("TEST_DB_PASSWORD", "review_password")
	dbName := getenvDefault("TEST_DB_NAME", "review_db")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	db, err := sqlx.Open("pgx", connStr)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("failed to ping database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &TestDB{db: db, Store: NewFromDB(db, observability.NewLogger())}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Truncate clears all data from tables while preserving schema
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()
	_, err := tdb.db.Exec(`TRUNCATE usage_counters, reviews, mailing_recipients, mailing_campaigns,
		orders, branches, accounts CASCADE`)
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

// CreateTestAccount inserts an account on the given plan.
func (tdb *TestDB) CreateTestAccount(t *testing.T, plan string) Account {
	t.Helper()
	var account Account
	err := tdb.db.GetContext(context.Background(), &account, `
		INSERT INTO accounts (email, business_name, plan)
		VALUES ($1, 'Test Shop', $2)
		RETURNING `+accountColumns,
		fmt.Sprintf("owner-%s@example.com", uuid.New().String()), plan)
	if err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}
