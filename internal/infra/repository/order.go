package repository

import (
	"context"
	"time"

	"homeclean/internal/domain/order"
	"homeclean/internal/infra"
	"homeclean/internal/infra/repository/converter"
	sqlc "homeclean/internal/infra/sqlc/generated"
	"homeclean/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type OrderWriteQueries interface {
	LockScheduleDate(ctx context.Context, db sqlc.DBTX, lockKey string) error
	InsertOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOrderParams) (uuid.UUID, error)
	GetOrderByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Order, error)
	GetOrderCoreByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Order, error)
	ListOrdersByDateAndStatuses(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOrdersByDateAndStatusesParams) ([]sqlc.Order, error)
	UpdateOrderStatusConditional(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateOrderStatusConditionalParams) (sqlc.Order, error)
	UpdateOrderStatusOnly(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateOrderStatusOnlyParams) (int64, error)
	ClaimOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimOrderParams) (int64, error)
}

type OrderRepository struct {
	queries OrderWriteQueries
}

func NewOrderRepository(queries OrderWriteQueries) *OrderRepository {
	return &OrderRepository{queries: queries}
}

func (r *OrderRepository) LockDate(ctx context.Context, tx sqlc.DBTX, date time.Time) error {
	if err := r.queries.LockScheduleDate(ctx, tx, "orders:"+date.Format(order.DateLayout)); err != nil {
		return infra.WrapRepoErr("failed to lock schedule date", err)
	}
	return nil
}

func (r *OrderRepository) Insert(ctx context.Context, tx sqlc.DBTX, o *order.Order) (uuid.UUID, error) {
	id, err := r.queries.InsertOrder(ctx, tx, converter.OrderToInsertParams(o))
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert order", err)
	}
	return id, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*order.Order, error) {
	row, err := r.queries.GetOrderByID(ctx, tx, id)
	return decodeFetched(row, err)
}

// GetCoreByID reads the order without its lifecycle timestamp columns, so it keeps
// working when storage lags behind the schema.
func (r *OrderRepository) GetCoreByID(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*order.Order, error) {
	row, err := r.queries.GetOrderCoreByID(ctx, tx, id)
	return decodeFetched(row, err)
}

func decodeFetched(row sqlc.Order, err error) (*order.Order, error) {
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get order", err)
	}
	o, err := converter.OrderFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode order", err, infra.KindDBFailure)
	}
	return o, nil
}

// ListByDate matches every stored spelling of the given statuses.
func (r *OrderRepository) ListByDate(ctx context.Context, tx sqlc.DBTX, date time.Time, statuses []order.Status) ([]*order.Order, error) {
	spellings := make([]string, 0, len(statuses))
	for _, s := range statuses {
		spellings = append(spellings, s.StoredSpellings()...)
	}
	rows, err := r.queries.ListOrdersByDateAndStatuses(ctx, tx, sqlc.ListOrdersByDateAndStatusesParams{
		ScheduledDate: pgconv.DateToPgtype(date),
		Statuses:      spellings,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders by date", err)
	}

	result := make([]*order.Order, 0, len(rows))
	for _, row := range rows {
		o, err := converter.OrderFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode order", err, infra.KindDBFailure)
		}
		result = append(result, o)
	}
	return result, nil
}

func (r *OrderRepository) UpdateConditional(
	ctx context.Context,
	tx sqlc.DBTX,
	id uuid.UUID,
	expected order.Status,
	patch order.Patch,
	now time.Time,
) (*order.Order, error) {
	row, err := r.queries.UpdateOrderStatusConditional(ctx, tx, converter.PatchToConditionalParams(id, expected, patch, now))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order status changed concurrently", err, infra.KindConflict)
		}
		return nil, infra.WrapRepoErr("failed to update order status", err)
	}
	o, err := converter.OrderFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode order", err, infra.KindDBFailure)
	}
	return o, nil
}

func (r *OrderRepository) UpdateStatusOnly(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, expected, next order.Status) error {
	affected, err := r.queries.UpdateOrderStatusOnly(ctx, tx, sqlc.UpdateOrderStatusOnlyParams{
		NewStatus:        next.String(),
		ID:               id,
		ExpectedStatuses: expected.StoredSpellings(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("order status changed concurrently", nil, infra.KindConflict)
	}
	return nil
}

func (r *OrderRepository) Claim(ctx context.Context, tx sqlc.DBTX, id, userID uuid.UUID, now time.Time) error {
	affected, err := r.queries.ClaimOrder(ctx, tx, sqlc.ClaimOrderParams{
		UserID:    pgconv.UUIDToPgtype(userID),
		UpdatedAt: pgconv.TimeToPgtype(now),
		ID:        id,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to claim order", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("order already claimed", nil, infra.KindConflict)
	}
	return nil
}
