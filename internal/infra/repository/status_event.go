package repository

import (
	"context"

	"homeclean/internal/infra"
	sqlc "homeclean/internal/infra/sqlc/generated"
	"homeclean/internal/pkg/pgconv"
	"homeclean/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
)

type StatusEventWriteQueries interface {
	InsertOrderStatusEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOrderStatusEventParams) error
}

type StatusEventRepository struct {
	queries StatusEventWriteQueries
}

func NewStatusEventRepository(queries StatusEventWriteQueries) *StatusEventRepository {
	return &StatusEventRepository{queries: queries}
}

func (r *StatusEventRepository) Append(ctx context.Context, tx sqlc.DBTX, e shared.StatusEvent) error {
	params := sqlc.InsertOrderStatusEventParams{
		OrderID:    e.OrderID,
		ToStatus:   e.To.String(),
		Source:     string(e.Source),
		OccurredAt: pgconv.TimeToPgtype(e.OccurredAt),
	}
	if e.From != nil {
		params.FromStatus = pgconv.StringToPgtype(e.From.String())
	} else {
		params.FromStatus = pgtype.Text{Valid: false}
	}

	if err := r.queries.InsertOrderStatusEvent(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to append order status event", err)
	}
	return nil
}
