package shared

import (
	"context"
	"time"

	"homeclean/internal/domain/order"
	sqlc "homeclean/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Orders() OrderRepository
	StatusEvents() StatusEventRepository
	DB() sqlc.DBTX
}

type OrderRepository interface {
	// LockDate serializes admission for one scheduled date until the transaction ends.
	LockDate(ctx context.Context, tx sqlc.DBTX, date time.Time) error
	Insert(ctx context.Context, tx sqlc.DBTX, o *order.Order) (uuid.UUID, error)
	GetByID(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*order.Order, error)
	// GetCoreByID skips the lifecycle timestamp columns; used by the status-only fallback.
	GetCoreByID(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*order.Order, error)
	ListByDate(ctx context.Context, tx sqlc.DBTX, date time.Time, statuses []order.Status) ([]*order.Order, error)
	// UpdateConditional writes patch only while the stored status is still expected.
	UpdateConditional(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, expected order.Status, patch order.Patch, now time.Time) (*order.Order, error)
	// UpdateStatusOnly is the reduced write used when the timestamp columns are unavailable.
	UpdateStatusOnly(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, expected, next order.Status) error
	Claim(ctx context.Context, tx sqlc.DBTX, id, userID uuid.UUID, now time.Time) error
}

type EventSource string

const (
	SourceWebhook  EventSource = "webhook"
	SourceCustomer EventSource = "customer"
	SourceStaff    EventSource = "staff"
	SourceSystem   EventSource = "system"
)

type StatusEvent struct {
	OrderID    uuid.UUID
	From       *order.Status
	To         order.Status
	Source     EventSource
	OccurredAt time.Time
}

type StatusEventRepository interface {
	Append(ctx context.Context, tx sqlc.DBTX, e StatusEvent) error
}
