package readstore

import (
	"context"
	"time"

	"homeclean/internal/domain/order"
	"homeclean/internal/infra"
	"homeclean/internal/infra/repository/converter"
	sqlc "homeclean/internal/infra/sqlc/generated"
	"homeclean/internal/pkg/pgconv"
	"homeclean/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderReadQueries interface {
	GetOrderByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Order, error)
	ListOrdersByDateAndStatuses(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOrdersByDateAndStatusesParams) ([]sqlc.Order, error)
	ListOrdersByUserID(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOrdersByUserIDParams) ([]sqlc.Order, error)
	ListOrdersByUserIDKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOrdersByUserIDKeysetParams) ([]sqlc.Order, error)
	ListOrderStatusEvents(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID) ([]sqlc.OrderStatusEvent, error)
}

type OrderReadStore struct {
	queries OrderReadQueries
	db      sqlc.DBTX
}

func NewOrderReadStore(queries OrderReadQueries, db sqlc.DBTX) *OrderReadStore {
	return &OrderReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	row, err := r.queries.GetOrderByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}
	o, err := converter.OrderFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode order", err, infra.KindDBFailure)
	}
	return o, nil
}

func (r *OrderReadStore) FindByDate(ctx context.Context, date time.Time, statuses []order.Status) ([]*order.Order, error) {
	spellings := make([]string, 0, len(statuses))
	for _, s := range statuses {
		spellings = append(spellings, s.StoredSpellings()...)
	}
	rows, err := r.queries.ListOrdersByDateAndStatuses(ctx, r.db, sqlc.ListOrdersByDateAndStatusesParams{
		ScheduledDate: pgconv.DateToPgtype(date),
		Statuses:      spellings,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find orders by date", err)
	}
	return decodeRows(rows)
}

func (r *OrderReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*order.Order, error) {
	rows, err := r.queries.ListOrdersByUserID(ctx, r.db, sqlc.ListOrdersByUserIDParams{
		UserID: pgconv.UUIDToPgtype(userID),
		Limit:  limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find orders first page", err)
	}
	return decodeRows(rows)
}

func (r *OrderReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*order.Order, error) {
	rows, err := r.queries.ListOrdersByUserIDKeyset(ctx, r.db, sqlc.ListOrdersByUserIDKeysetParams{
		UserID:         pgconv.UUIDToPgtype(userID),
		AfterCreatedAt: pgconv.TimeToPgtype(lastCreatedAt),
		AfterID:        lastID,
		RowLimit:       limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find orders keyset", err)
	}
	return decodeRows(rows)
}

func (r *OrderReadStore) FindEvents(ctx context.Context, orderID uuid.UUID) ([]*queries.StatusEventView, error) {
	rows, err := r.queries.ListOrderStatusEvents(ctx, r.db, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order status events", err)
	}
	result := make([]*queries.StatusEventView, len(rows))
	for i, row := range rows {
		result[i] = &queries.StatusEventView{
			FromStatus: pgconv.StringPtrFromPgtype(row.FromStatus),
			ToStatus:   row.ToStatus,
			Source:     row.Source,
			OccurredAt: pgconv.TimeFromPgtype(row.OccurredAt),
		}
	}
	return result, nil
}

func decodeRows(rows []sqlc.Order) ([]*order.Order, error) {
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
