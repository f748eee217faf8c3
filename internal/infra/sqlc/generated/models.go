package sqlc

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Order struct {
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
	PaidAt           pgtype.Timestamptz `json:"paid_at"`
	ConfirmedAt      pgtype.Timestamptz `json:"confirmed_at"`
	CompletedAt      pgtype.Timestamptz `json:"completed_at"`
	CancelledAt      pgtype.Timestamptz `json:"cancelled_at"`
	UpdatedAt        pgtype.Timestamptz `json:"updated_at"`
}

type OrderStatusEvent struct {
	ID         uuid.UUID          `json:"id"`
	OrderID    uuid.UUID          `json:"order_id"`
	FromStatus pgtype.Text        `json:"from_status"`
	ToStatus   string             `json:"to_status"`
	Source     string             `json:"source"`
	OccurredAt pgtype.Timestamptz `json:"occurred_at"`
	RecordedAt pgtype.Timestamptz `json:"recorded_at"`
}
