package converter

import (
	"fmt"
	"math"
	"time"

	"homeclean/internal/domain/order"
	sqlc "homeclean/internal/infra/sqlc/generated"
	"homeclean/internal/pkg/pgconv"

	"github.com/google/uuid"
)

func OrderToInsertParams(o *order.Order) sqlc.InsertOrderParams {
	s := o.Schedule()
	d := o.Details()
	extras := d.Extras
	if extras == nil {
		extras = []string{}
	}
	return sqlc.InsertOrderParams{
		ID:               o.ID(),
		UserID:           pgconv.UUIDPtrToPgtype(o.UserID()),
		PendingTokenHash: pgconv.OptionalStringToPgtype(o.PendingTokenHash()),
		ScheduledDate:    pgconv.DateToPgtype(s.Date()),
		ScheduledTime:    pgconv.MinutesToPgtypeTime(s.StartMinute()),
		EstimatedHours:   s.EstimatedHours(),
		DurationMinutes:  toInt32(s.DurationMinutes()),
		Status:           o.Status().String(),
		ServiceType:      d.ServiceType,
		CustomerName:     d.CustomerName,
		CustomerEmail:    d.CustomerEmail,
		CustomerPhone:    d.CustomerPhone,
		Address:          d.Address,
		Notes:            d.Notes,
		PriceCents:       d.PriceCents,
		Extras:           extras,
		CreatedAt:        pgconv.TimeToPgtype(o.CreatedAt()),
		PaymentDueAt:     pgconv.TimePtrToPgtype(o.PaymentDueAt()),
		UpdatedAt:        pgconv.TimeToPgtype(o.UpdatedAt()),
	}
}

func PatchToConditionalParams(id uuid.UUID, expected order.Status, p order.Patch, now time.Time) sqlc.UpdateOrderStatusConditionalParams {
	return sqlc.UpdateOrderStatusConditionalParams{
		NewStatus:        p.Status.String(),
		PaidAt:           pgconv.TimePtrToPgtype(p.PaidAt),
		ConfirmedAt:      pgconv.TimePtrToPgtype(p.ConfirmedAt),
		CompletedAt:      pgconv.TimePtrToPgtype(p.CompletedAt),
		CancelledAt:      pgconv.TimePtrToPgtype(p.CancelledAt),
		UpdatedAt:        pgconv.TimeToPgtype(now),
		ID:               id,
		ExpectedStatuses: expected.StoredSpellings(),
	}
}

// OrderFromRow rebuilds the aggregate. Legacy status spellings are normalized here.
func OrderFromRow(row sqlc.Order) (*order.Order, error) {
	status, err := order.ParseStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("order %s: stored status %q: %w", row.ID, row.Status, err)
	}
	date, err := pgconv.DateFromPgtype(row.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", row.ID, err)
	}
	start, err := pgconv.MinutesFromPgtypeTime(row.ScheduledTime)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", row.ID, err)
	}
	schedule, err := order.ScheduleFromParts(date, start, row.EstimatedHours)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", row.ID, err)
	}

	return order.Reconstruct(order.ReconstructParams{
		ID:               row.ID,
		UserID:           pgconv.UUIDPtrFromPgtype(row.UserID),
		PendingTokenHash: pgconv.StringFromPgtype(row.PendingTokenHash),
		Schedule:         schedule,
		Status:           status,
		Details: order.Details{
			ServiceType:   row.ServiceType,
			CustomerName:  row.CustomerName,
			CustomerEmail: row.CustomerEmail,
			CustomerPhone: row.CustomerPhone,
			Address:       row.Address,
			Notes:         row.Notes,
			PriceCents:    row.PriceCents,
			Extras:        row.Extras,
		},
		CreatedAt:    pgconv.TimeFromPgtype(row.CreatedAt),
		PaymentDueAt: pgconv.TimePtrFromPgtype(row.PaymentDueAt),
		PaidAt:       pgconv.TimePtrFromPgtype(row.PaidAt),
		ConfirmedAt:  pgconv.TimePtrFromPgtype(row.ConfirmedAt),
		CompletedAt:  pgconv.TimePtrFromPgtype(row.CompletedAt),
		CancelledAt:  pgconv.TimePtrFromPgtype(row.CancelledAt),
		UpdatedAt:    pgconv.TimeFromPgtype(row.UpdatedAt),
	}), nil
}

func toInt32(v int) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	// #nosec G115 -- bounded above
	return int32(v)
}
