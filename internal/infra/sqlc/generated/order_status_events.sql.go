package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertOrderStatusEvent = `-- name: InsertOrderStatusEvent :exec
INSERT INTO order_status_events (order_id, from_status, to_status, source, occurred_at)
VALUES ($1, $2, $3, $4, $5)
`

type InsertOrderStatusEventParams struct {
	OrderID    uuid.UUID          `json:"order_id"`
	FromStatus pgtype.Text        `json:"from_status"`
	ToStatus   string             `json:"to_status"`
	Source     string             `json:"source"`
	OccurredAt pgtype.Timestamptz `json:"occurred_at"`
}

func (q *Queries) InsertOrderStatusEvent(ctx context.Context, db DBTX, arg InsertOrderStatusEventParams) error {
	_, err := db.Exec(ctx, insertOrderStatusEvent,
		arg.OrderID,
		arg.FromStatus,
		arg.ToStatus,
		arg.Source,
		arg.OccurredAt,
	)
	return err
}

const listOrderStatusEvents = `-- name: ListOrderStatusEvents :many
SELECT id, order_id, from_status, to_status, source, occurred_at, recorded_at
FROM order_status_events
WHERE order_id = $1
ORDER BY recorded_at, id
`

func (q *Queries) ListOrderStatusEvents(ctx context.Context, db DBTX, orderID uuid.UUID) ([]OrderStatusEvent, error) {
	rows, err := db.Query(ctx, listOrderStatusEvents, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []OrderStatusEvent{}
	for rows.Next() {
		var i OrderStatusEvent
		if err := rows.Scan(
			&i.ID,
			&i.OrderID,
			&i.FromStatus,
			&i.ToStatus,
			&i.Source,
			&i.OccurredAt,
			&i.RecordedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
