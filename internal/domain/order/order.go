package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Details is the commercial payload of an order. Admission control and the
// lifecycle never look at it.
type Details struct {
	ServiceType   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Address       string
	Notes         string
	PriceCents    int64
	Extras        []string
}

func (d Details) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"serviceType", d.ServiceType},
		{"customerName", d.CustomerName},
		{"customerEmail", d.CustomerEmail},
		{"customerPhone", d.CustomerPhone},
		{"address", d.Address},
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingDetails, strings.Join(missing, ", "))
	}
	if d.PriceCents < 0 {
		return fmt.Errorf("%w: priceCents must not be negative", ErrMissingDetails)
	}
	return nil
}

type Order struct {
	id               uuid.UUID
	userID           *uuid.UUID
	pendingTokenHash string
	schedule         Schedule
	status           Status
	details          Details
	createdAt        time.Time
	paymentDueAt     *time.Time
	paidAt           *time.Time
	confirmedAt      *time.Time
	completedAt      *time.Time
	cancelledAt      *time.Time
	updatedAt        time.Time
}

// NewOrder creates an order in its initial awaiting-payment state.
func NewOrder(schedule Schedule, details Details, userID *uuid.UUID, pendingTokenHash string, now time.Time) (*Order, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}
	if pendingTokenHash == "" {
		return nil, fmt.Errorf("%w: pending token", ErrMissingDetails)
	}
	return &Order{
		id:               uuid.New(),
		userID:           userID,
		pendingTokenHash: pendingTokenHash,
		schedule:         schedule,
		status:           StatusAwaitingPayment,
		details:          details,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

type ReconstructParams struct {
	ID               uuid.UUID
	UserID           *uuid.UUID
	PendingTokenHash string
	Schedule         Schedule
	Status           Status
	Details          Details
	CreatedAt        time.Time
	PaymentDueAt     *time.Time
	PaidAt           *time.Time
	ConfirmedAt      *time.Time
	CompletedAt      *time.Time
	CancelledAt      *time.Time
	UpdatedAt        time.Time
}

func Reconstruct(p ReconstructParams) *Order {
	return &Order{
		id:               p.ID,
		userID:           p.UserID,
		pendingTokenHash: p.PendingTokenHash,
		schedule:         p.Schedule,
		status:           p.Status,
		details:          p.Details,
		createdAt:        p.CreatedAt,
		paymentDueAt:     p.PaymentDueAt,
		paidAt:           p.PaidAt,
		confirmedAt:      p.ConfirmedAt,
		completedAt:      p.CompletedAt,
		cancelledAt:      p.CancelledAt,
		updatedAt:        p.UpdatedAt,
	}
}

// Apply returns a copy of o with the patch written over it, mirroring what the
// conditional update persists.
func (o *Order) Apply(p Patch, now time.Time) *Order {
	next := *o
	next.status = p.Status
	next.paidAt = firstSet(o.paidAt, p.PaidAt)
	next.confirmedAt = firstSet(o.confirmedAt, p.ConfirmedAt)
	next.completedAt = firstSet(o.completedAt, p.CompletedAt)
	next.cancelledAt = firstSet(o.cancelledAt, p.CancelledAt)
	next.updatedAt = now
	return &next
}

func firstSet(current, candidate *time.Time) *time.Time {
	if current != nil {
		return current
	}
	return candidate
}

func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.userID != nil && *o.userID == userID
}

func (o *Order) IsClaimable() bool {
	return o.userID == nil && o.pendingTokenHash != ""
}

func (o *Order) ID() uuid.UUID            { return o.id }
func (o *Order) UserID() *uuid.UUID       { return o.userID }
func (o *Order) PendingTokenHash() string { return o.pendingTokenHash }
func (o *Order) Schedule() Schedule       { return o.schedule }
func (o *Order) Slot() Slot               { return o.schedule.Slot() }
func (o *Order) Status() Status           { return o.status }
func (o *Order) Details() Details         { return o.details }
func (o *Order) CreatedAt() time.Time     { return o.createdAt }
func (o *Order) PaymentDueAt() *time.Time { return o.paymentDueAt }
func (o *Order) PaidAt() *time.Time       { return o.paidAt }
func (o *Order) ConfirmedAt() *time.Time  { return o.confirmedAt }
func (o *Order) CompletedAt() *time.Time  { return o.completedAt }
func (o *Order) CancelledAt() *time.Time  { return o.cancelledAt }
func (o *Order) UpdatedAt() time.Time     { return o.updatedAt }
