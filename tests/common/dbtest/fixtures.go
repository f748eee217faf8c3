//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"homeclean/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// InsertOrder writes b straight into the orders table, bypassing admission control.
// Use it for rows the API cannot produce, such as holds created hours ago.
func InsertOrder(t *testing.T, db DBLike, b *builder.OrderBuilder) uuid.UUID {
	t.Helper()

	s := b.MustSchedule()
	d := b.Details
	extras := d.Extras
	if extras == nil {
		extras = []string{}
	}

	var hash any
	if b.PendingTokenHash != "" {
		hash = b.PendingTokenHash
	}

	_, err := db.Exec(context.Background(), `
		INSERT INTO orders (
			id, user_id, pending_token_hash, scheduled_date, scheduled_time, estimated_hours,
			duration_minutes, status, service_type, customer_name, customer_email, customer_phone,
			address, notes, price_cents, extras, created_at, payment_due_at, paid_at, confirmed_at,
			completed_at, cancelled_at, updated_at
		) VALUES (
			$1, $2, $3, $4::date, $5::time, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $17
		)`,
		b.ID, b.UserID, hash, s.DateString(), s.StartClock(), s.EstimatedHours(),
		s.DurationMinutes(), b.Status.String(), d.ServiceType, d.CustomerName, d.CustomerEmail, d.CustomerPhone,
		d.Address, d.Notes, d.PriceCents, extras, b.CreatedAt, b.PaymentDueAt, b.PaidAt, b.ConfirmedAt,
		b.CompletedAt, b.CancelledAt,
	)
	require.NoError(t, err)
	return b.ID
}

// SetStoredStatus overwrites the raw status column, e.g. with a legacy spelling.
func SetStoredStatus(t *testing.T, db DBLike, id uuid.UUID, status string) {
	t.Helper()
	_, err := db.Exec(context.Background(), "UPDATE orders SET status = $2 WHERE id = $1", id, status)
	require.NoError(t, err)
}

func StoredStatus(t *testing.T, db DBLike, id uuid.UUID) string {
	t.Helper()
	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM orders WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	return status
}

// StatusEventTargets lists the to_status of every recorded event in recording order.
func StatusEventTargets(t *testing.T, db DBLike, id uuid.UUID) []string {
	t.Helper()
	var targets []string
	err := db.QueryRow(context.Background(), `
		SELECT coalesce(array_agg(to_status ORDER BY recorded_at, occurred_at), '{}')
		FROM order_status_events WHERE order_id = $1`, id).Scan(&targets)
	require.NoError(t, err)
	return targets
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
