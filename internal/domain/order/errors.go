package order

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidSchedule   = errors.New("invalid schedule")
	ErrSlotConflict      = errors.New("time slot is already reserved")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrMissingDetails    = errors.New("missing order details")
)

// SlotConflictError names the existing order that blocks the requested slot.
type SlotConflictError struct {
	OrderID uuid.UUID
	Slot    Slot
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("%s: overlaps order %s (%s)", ErrSlotConflict, e.OrderID, e.Slot)
}

func (e *SlotConflictError) Unwrap() error {
	return ErrSlotConflict
}

type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
