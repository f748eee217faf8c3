package order

import "time"

// Patch is what a transition writes. Timestamp fields are nil unless this
// transition is the one that first populates them.
type Patch struct {
	Status      Status
	PaidAt      *time.Time
	ConfirmedAt *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// WithoutTimestamps is the reduced payload used when storage lacks the optional columns.
func (p Patch) WithoutTimestamps() Patch {
	return Patch{Status: p.Status}
}

func (p Patch) HasTimestamps() bool {
	return p.PaidAt != nil || p.ConfirmedAt != nil || p.CompletedAt != nil || p.CancelledAt != nil
}

type Transition struct {
	From       Status
	To         Status
	Idempotent bool
	Patch      Patch
}

// EvaluateTransition applies the transition table to the order's effective status.
// Requested must already be canonical; see ParseStatus.
func (p *Policy) EvaluateTransition(o *Order, requested Status, now time.Time) (Transition, error) {
	if !requested.IsValid() {
		return Transition{}, ErrUnknownStatus
	}
	current := p.EffectiveStatus(o, now)
	if current == requested {
		return Transition{From: current, To: requested, Idempotent: true}, nil
	}
	if !CanTransition(current, requested) {
		return Transition{}, &InvalidTransitionError{From: current, To: requested}
	}

	patch := Patch{Status: requested}
	ts := now.UTC()
	switch requested {
	case StatusPaid:
		if o.PaidAt() == nil {
			patch.PaidAt = &ts
		}
	case StatusReserved:
		if o.ConfirmedAt() == nil {
			patch.ConfirmedAt = &ts
		}
	case StatusCompleted:
		if o.CompletedAt() == nil {
			patch.CompletedAt = &ts
		}
	case StatusCancelled, StatusExpired:
		if o.CancelledAt() == nil {
			patch.CancelledAt = &ts
		}
	}
	return Transition{From: current, To: requested, Patch: patch}, nil
}
