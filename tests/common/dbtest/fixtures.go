//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx, so fixtures can seed
// inside or outside a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InsertCustomerProfile stores a local profile mapping for a returning customer.
func InsertCustomerProfile(t *testing.T, db DBLike, email, gatewayProfileID string) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO customer_profiles (id, email, authorize_net_customer_profile_id)
		VALUES (gen_random_uuid(), $1, $2)
		ON CONFLICT (email) DO UPDATE SET authorize_net_customer_profile_id = EXCLUDED.authorize_net_customer_profile_id`,
		strings.ToLower(email), gatewayProfileID)
	require.NoError(t, err)
}

// CountRows runs a COUNT(*) query and returns the result.
func CountRows(t *testing.T, db DBLike, query string, args ...any) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), query, args...).Scan(&n)
	require.NoError(t, err)
	return n
}

// brokerTables lists every table migrations create, children first.
var brokerTables = []string{
	"payment_transactions",
	"webhook_events",
	"pending_correlations",
	"customer_profiles",
}

// ResetDB empties every broker table between subtests.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE TABLE "+strings.Join(brokerTables, ", ")+" RESTART IDENTITY CASCADE")
	if err != nil {
		return fmt.Errorf("truncate broker tables: %w", err)
	}
	return nil
}
