package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderColumns = `id, user_id, pending_token_hash, scheduled_date, scheduled_time, estimated_hours, duration_minutes,
       status, service_type, customer_name, customer_email, customer_phone, address, notes, price_cents,
       extras, created_at, payment_due_at, paid_at, confirmed_at, completed_at, cancelled_at, updated_at`

func scanOrder(row pgx.Row) (Order, error) {
	var i Order
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.PendingTokenHash,
		&i.ScheduledDate,
		&i.ScheduledTime,
		&i.EstimatedHours,
		&i.DurationMinutes,
		&i.Status,
		&i.ServiceType,
		&i.CustomerName,
		&i.CustomerEmail,
		&i.CustomerPhone,
		&i.Address,
		&i.Notes,
		&i.PriceCents,
		&i.Extras,
		&i.CreatedAt,
		&i.PaymentDueAt,
		&i.PaidAt,
		&i.ConfirmedAt,
		&i.CompletedAt,
		&i.CancelledAt,
		&i.UpdatedAt,
	)
	return i, err
}

func scanOrders(rows pgx.Rows) ([]Order, error) {
	defer rows.Close()
	items := []Order{}
	for rows.Next() {
		i, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertOrder = `-- name: InsertOrder :one
INSERT INTO orders (
    id, user_id, pending_token_hash, scheduled_date, scheduled_time, estimated_hours, duration_minutes,
    status, service_type, customer_name, customer_email, customer_phone, address, notes, price_cents,
    extras, created_at, payment_due_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19
)
RETURNING id
`

type InsertOrderParams struct {
	ID               uuid.UUID          `json:"id"`
	UserID           pgtype.UUID        `json:"user_id"`
	PendingTokenHash pgtype.Text        `json:"pending_token_hash"`
	ScheduledDate    pgtype.Date        `json:"scheduled_date"`
	ScheduledTime    pgtype.Time        `json:"scheduled_time"`
	EstimatedHours   float64            `json:"estimated_hours"`
	DurationMinutes  int32              `json:"duration_minutes"`
	Status           string             `json:"status"`
	ServiceType      string             `json:"service_type"`
	CustomerName     string             `json:"customer_name"`
	CustomerEmail    string             `json:"customer_email"`
	CustomerPhone    string             `json:"customer_phone"`
	Address          string             `json:"address"`
	Notes            string             `json:"notes"`
	PriceCents       int64              `json:"price_cents"`
	Extras           []string           `json:"extras"`
	CreatedAt        pgtype.Timestamptz `json:"created_at"`
	PaymentDueAt     pgtype.Timestamptz `json:"payment_due_at"`
	UpdatedAt        pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) InsertOrder(ctx context.Context, db DBTX, arg InsertOrderParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, insertOrder,
		arg.ID,
		arg.UserID,
		arg.PendingTokenHash,
		arg.ScheduledDate,
		arg.ScheduledTime,
		arg.EstimatedHours,
		arg.DurationMinutes,
		arg.Status,
		arg.ServiceType,
		arg.CustomerName,
		arg.CustomerEmail,
		arg.CustomerPhone,
		arg.Address,
		arg.Notes,
		arg.PriceCents,
		arg.Extras,
		arg.CreatedAt,
		arg.PaymentDueAt,
		arg.UpdatedAt,
	)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const getOrderByID = `-- name: GetOrderByID :one
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
`

func (q *Queries) GetOrderByID(ctx context.Context, db DBTX, id uuid.UUID) (Order, error) {
	row := db.QueryRow(ctx, getOrderByID, id)
	return scanOrder(row)
}

const getOrderCoreByID = `-- name: GetOrderCoreByID :one
SELECT id, user_id, pending_token_hash, scheduled_date, scheduled_time, estimated_hours, duration_minutes,
       status, service_type, customer_name, customer_email, customer_phone, address, notes, price_cents,
       extras, created_at, payment_due_at
FROM orders
WHERE id = $1
`

// GetOrderCoreByID leaves the lifecycle timestamp columns and updated_at unset.
func (q *Queries) GetOrderCoreByID(ctx context.Context, db DBTX, id uuid.UUID) (Order, error) {
	row := db.QueryRow(ctx, getOrderCoreByID, id)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.PendingTokenHash,
		&i.ScheduledDate,
		&i.ScheduledTime,
		&i.EstimatedHours,
		&i.DurationMinutes,
		&i.Status,
		&i.ServiceType,
		&i.CustomerName,
		&i.CustomerEmail,
		&i.CustomerPhone,
		&i.Address,
		&i.Notes,
		&i.PriceCents,
		&i.Extras,
		&i.CreatedAt,
		&i.PaymentDueAt,
	)
	return i, err
}

const listOrdersByDateAndStatuses = `-- name: ListOrdersByDateAndStatuses :many
SELECT ` + orderColumns + `
FROM orders
WHERE scheduled_date = $1
  AND status = ANY($2::text[])
ORDER BY scheduled_time, id
`

type ListOrdersByDateAndStatusesParams struct {
	ScheduledDate pgtype.Date `json:"scheduled_date"`
	Statuses      []string    `json:"statuses"`
}

func (q *Queries) ListOrdersByDateAndStatuses(ctx context.Context, db DBTX, arg ListOrdersByDateAndStatusesParams) ([]Order, error) {
	rows, err := db.Query(ctx, listOrdersByDateAndStatuses, arg.ScheduledDate, arg.Statuses)
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}

const listOrdersByUserID = `-- name: ListOrdersByUserID :many
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`

type ListOrdersByUserIDParams struct {
	UserID pgtype.UUID `json:"user_id"`
	Limit  int32       `json:"limit"`
}

func (q *Queries) ListOrdersByUserID(ctx context.Context, db DBTX, arg ListOrdersByUserIDParams) ([]Order, error) {
	rows, err := db.Query(ctx, listOrdersByUserID, arg.UserID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}

const listOrdersByUserIDKeyset = `-- name: ListOrdersByUserIDKeyset :many
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
  AND (created_at, id) < ($2::timestamptz, $3::uuid)
ORDER BY created_at DESC, id DESC
LIMIT $4
`

type ListOrdersByUserIDKeysetParams struct {
	UserID         pgtype.UUID        `json:"user_id"`
	AfterCreatedAt pgtype.Timestamptz `json:"after_created_at"`
	AfterID        uuid.UUID          `json:"after_id"`
	RowLimit       int32              `json:"row_limit"`
}

func (q *Queries) ListOrdersByUserIDKeyset(ctx context.Context, db DBTX, arg ListOrdersByUserIDKeysetParams) ([]Order, error) {
	rows, err := db.Query(ctx, listOrdersByUserIDKeyset,
		arg.UserID,
		arg.AfterCreatedAt,
		arg.AfterID,
		arg.RowLimit,
	)
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}

const updateOrderStatusConditional = `-- name: UpdateOrderStatusConditional :one
UPDATE orders
SET status       = $1,
    paid_at      = COALESCE(paid_at, $2),
    confirmed_at = COALESCE(confirmed_at, $3),
    completed_at = COALESCE(completed_at, $4),
    cancelled_at = COALESCE(cancelled_at, $5),
    updated_at   = $6
WHERE id = $7
  AND status = ANY($8::text[])
RETURNING ` + orderColumns + `
`

type UpdateOrderStatusConditionalParams struct {
	NewStatus        string             `json:"new_status"`
	PaidAt           pgtype.Timestamptz `json:"paid_at"`
	ConfirmedAt      pgtype.Timestamptz `json:"confirmed_at"`
	CompletedAt      pgtype.Timestamptz `json:"completed_at"`
	CancelledAt      pgtype.Timestamptz `json:"cancelled_at"`
	UpdatedAt        pgtype.Timestamptz `json:"updated_at"`
	ID               uuid.UUID          `json:"id"`
	ExpectedStatuses []string           `json:"expected_statuses"`
}

func (q *Queries) UpdateOrderStatusConditional(ctx context.Context, db DBTX, arg UpdateOrderStatusConditionalParams) (Order, error) {
	row := db.QueryRow(ctx, updateOrderStatusConditional,
		arg.NewStatus,
		arg.PaidAt,
		arg.ConfirmedAt,
		arg.CompletedAt,
		arg.CancelledAt,
		arg.UpdatedAt,
		arg.ID,
		arg.ExpectedStatuses,
	)
	return scanOrder(row)
}

const updateOrderStatusOnly = `-- name: UpdateOrderStatusOnly :execrows
UPDATE orders
SET status = $1
WHERE id = $2
  AND status = ANY($3::text[])
`

type UpdateOrderStatusOnlyParams struct {
	NewStatus        string    `json:"new_status"`
	ID               uuid.UUID `json:"id"`
	ExpectedStatuses []string  `json:"expected_statuses"`
}

func (q *Queries) UpdateOrderStatusOnly(ctx context.Context, db DBTX, arg UpdateOrderStatusOnlyParams) (int64, error) {
	result, err := db.Exec(ctx, updateOrderStatusOnly, arg.NewStatus, arg.ID, arg.ExpectedStatuses)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const claimOrder = `-- name: ClaimOrder :execrows
UPDATE orders
SET user_id            = $1,
    pending_token_hash = NULL,
    updated_at         = $2
WHERE id = $3
  AND user_id IS NULL
`

type ClaimOrderParams struct {
	UserID    pgtype.UUID        `json:"user_id"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
	ID        uuid.UUID          `json:"id"`
}

func (q *Queries) ClaimOrder(ctx context.Context, db DBTX, arg ClaimOrderParams) (int64, error) {
	result, err := db.Exec(ctx, claimOrder, arg.UserID, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const lockScheduleDate = `-- name: LockScheduleDate :exec
SELECT pg_advisory_xact_lock(hashtext($1::text))
`

func (q *Queries) LockScheduleDate(ctx context.Context, db DBTX, lockKey string) error {
	_, err := db.Exec(ctx, lockScheduleDate, lockKey)
	return err
}
