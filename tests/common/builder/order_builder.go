//go:build unit || e2e

package builder

import (
	"time"

	"homeclean/internal/domain/order"

	"github.com/google/uuid"
)

var BaseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type OrderBuilder struct {
	ID               uuid.UUID
	UserID           *uuid.UUID
	PendingTokenHash string
	Date             string
	Time             string
	EstimatedHours   float64
	Status           order.Status
	Details          order.Details
	CreatedAt        time.Time
	PaymentDueAt     *time.Time
	PaidAt           *time.Time
	ConfirmedAt      *time.Time
	CompletedAt      *time.Time
	CancelledAt      *time.Time
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		ID:               uuid.New(),
		PendingTokenHash: "$2a$04$placeholderhashplaceholderhashplaceholderhashplacehol",
		Date:             "2026-03-02",
		Time:             "10:00",
		EstimatedHours:   3,
		Status:           order.StatusAwaitingPayment,
		Details: order.Details{
			ServiceType:   "standard",
			CustomerName:  "Hanako Yamada",
			CustomerEmail: "hanako@example.com",
			CustomerPhone: "090-1234-5678",
			Address:       "1-2-3 Shibuya, Tokyo",
			PriceCents:    1500000,
		},
		CreatedAt: BaseTime,
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

func (b *OrderBuilder) MustSchedule() order.Schedule {
	s, err := order.NewSchedule(b.Date, b.Time, b.EstimatedHours)
	if err != nil {
		panic(err)
	}
	return s
}

// BuildDomain creates a fresh order the way the creation service does.
func (b *OrderBuilder) BuildDomain() (*order.Order, error) {
	s, err := order.NewSchedule(b.Date, b.Time, b.EstimatedHours)
	if err != nil {
		return nil, err
	}
	return order.NewOrder(s, b.Details, b.UserID, b.PendingTokenHash, b.CreatedAt)
}

// BuildStored rebuilds an order as the store would return it.
func (b *OrderBuilder) BuildStored() *order.Order {
	return order.Reconstruct(order.ReconstructParams{
		ID:               b.ID,
		UserID:           b.UserID,
		PendingTokenHash: b.PendingTokenHash,
		Schedule:         b.MustSchedule(),
		Status:           b.Status,
		Details:          b.Details,
		CreatedAt:        b.CreatedAt,
		PaymentDueAt:     b.PaymentDueAt,
		PaidAt:           b.PaidAt,
		ConfirmedAt:      b.ConfirmedAt,
		CompletedAt:      b.CompletedAt,
		CancelledAt:      b.CancelledAt,
		UpdatedAt:        b.CreatedAt,
	})
}

func (b *OrderBuilder) WithID(id uuid.UUID) *OrderBuilder {
	b.ID = id
	return b
}

func (b *OrderBuilder) WithUserID(userID uuid.UUID) *OrderBuilder {
	b.UserID = &userID
	return b
}

func (b *OrderBuilder) WithSlot(date, start string, hours float64) *OrderBuilder {
	b.Date = date
	b.Time = start
	b.EstimatedHours = hours
	return b
}

func (b *OrderBuilder) WithStatus(status order.Status) *OrderBuilder {
	b.Status = status
	return b
}

func (b *OrderBuilder) WithCreatedAt(createdAt time.Time) *OrderBuilder {
	b.CreatedAt = createdAt
	return b
}

func (b *OrderBuilder) WithPaymentDueAt(due time.Time) *OrderBuilder {
	b.PaymentDueAt = &due
	return b
}

func (b *OrderBuilder) WithPaidAt(paidAt time.Time) *OrderBuilder {
	b.PaidAt = &paidAt
	return b
}

func (b *OrderBuilder) WithPendingTokenHash(hash string) *OrderBuilder {
	b.PendingTokenHash = hash
	return b
}

func (b *OrderBuilder) AsReserved() *OrderBuilder {
	paid := b.CreatedAt.Add(5 * time.Minute)
	b.Status = order.StatusReserved
	b.PaidAt = &paid
	b.ConfirmedAt = &paid
	return b
}
