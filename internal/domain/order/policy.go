package order

import (
	"time"
)

// Policy carries the externally configured booking rules.
type Policy struct {
	Hours      WorkingHours
	HoldWindow time.Duration
}

func NewPolicy(hours WorkingHours, holdWindow time.Duration) (*Policy, error) {
	if holdWindow <= 0 {
		return nil, ErrInvalidSchedule
	}
	return &Policy{Hours: hours, HoldWindow: holdWindow}, nil
}

// PaymentDeadline is when an unpaid soft reservation stops holding its slot.
func (p *Policy) PaymentDeadline(o *Order) time.Time {
	if o.PaymentDueAt() != nil {
		return *o.PaymentDueAt()
	}
	return o.CreatedAt().Add(p.HoldWindow)
}

// EffectiveStatus derives the status readers must treat as current. Expiry of
// soft reservations is computed here and never written back by a sweep.
func (p *Policy) EffectiveStatus(o *Order, now time.Time) Status {
	if o.Status() != StatusAwaitingPayment || o.PaidAt() != nil {
		return o.Status()
	}
	if !now.Before(p.PaymentDeadline(o)) {
		return StatusExpired
	}
	return StatusAwaitingPayment
}

// Blocks reports whether o still occupies its slot at now.
func (p *Policy) Blocks(o *Order, now time.Time) bool {
	switch p.EffectiveStatus(o, now) {
	case StatusAwaitingPayment, StatusPaymentPending, StatusReserved, StatusPaid, StatusInProgress:
		return true
	default:
		return false
	}
}

// CandidateStatuses are the stored statuses worth loading for admission; the
// final decision is still made by Blocks.
func CandidateStatuses() []Status {
	return []Status{StatusAwaitingPayment, StatusPaymentPending, StatusReserved, StatusPaid, StatusInProgress}
}

// Admit decides whether proposed may be booked against a snapshot of same-day orders.
func (p *Policy) Admit(proposed Schedule, sameDay []*Order, now time.Time) error {
	if err := proposed.Within(p.Hours); err != nil {
		return err
	}
	slot := proposed.Slot()
	for _, existing := range sameDay {
		if !p.Blocks(existing, now) {
			continue
		}
		if slot.Overlaps(existing.Slot()) {
			return &SlotConflictError{OrderID: existing.ID(), Slot: existing.Slot()}
		}
	}
	return nil
}

// BusySlots lists the slots of orders that block at now, in input order.
func (p *Policy) BusySlots(orders []*Order, now time.Time) []Slot {
	slots := make([]Slot, 0, len(orders))
	for _, o := range orders {
		if p.Blocks(o, now) {
			slots = append(slots, o.Slot())
		}
	}
	return slots
}
