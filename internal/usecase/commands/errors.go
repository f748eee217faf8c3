package commands

import (
	"homeclean/internal/domain/order"
	"homeclean/internal/infra"
	"homeclean/internal/pkg/errs"
	"homeclean/internal/pkg/token"
)

var (
	ErrOrderNotFound       = errs.New("order not found")
	ErrConcurrentUpdate    = errs.New("order was modified concurrently, retry later")
	ErrStatusRejected      = errs.New("storage rejected the order status; the status constraint is out of date")
	ErrOrderAlreadyClaimed = errs.New("order is already linked to another account")
	ErrPendingTokenInvalid = errs.New("pending token does not match this order")
	ErrOrderNotOwned       = errs.New("order does not belong to this account")
	ErrNotStaff            = errs.New("staff or admin role required")
	ErrUnknownPaymentEvent = errs.New("unknown payment event")
	ErrMissingTarget       = errs.New("either nextStatus or event is required")
	ErrInvalidOccurredAt   = errs.New("occurredAt must be an RFC3339 timestamp")
)

// classify marks domain and storage errors with the taxonomy handlers understand.
// Errors that already carry a taxonomy mark pass through.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errs.Is(err, errs.ErrInvalidInput), errs.Is(err, errs.ErrInvalidSchedule),
		errs.Is(err, errs.ErrConflict), errs.Is(err, errs.ErrNotFound),
		errs.Is(err, errs.ErrUnauthorized), errs.Is(err, errs.ErrForbidden),
		errs.Is(err, errs.ErrConfiguration):
		return err
	case errs.Is(err, order.ErrInvalidSchedule):
		return errs.Mark(err, errs.ErrInvalidSchedule)
	case errs.Is(err, order.ErrMissingDetails), errs.Is(err, order.ErrUnknownStatus):
		return errs.Mark(err, errs.ErrInvalidInput)
	case errs.Is(err, order.ErrSlotConflict), errs.Is(err, order.ErrInvalidTransition):
		return errs.Mark(err, errs.ErrConflict)
	case errs.Is(err, token.ErrMismatch), errs.Is(err, token.ErrInvalidToken):
		return errs.Mark(ErrPendingTokenInvalid, errs.ErrForbidden)
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(ErrOrderNotFound, errs.ErrNotFound)
	case infra.IsKind(err, infra.KindSlotOverlap):
		return errs.Mark(errs.Mark(err, order.ErrSlotConflict), errs.ErrConflict)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(errs.Mark(err, ErrConcurrentUpdate), errs.ErrConflict)
	case infra.IsKind(err, infra.KindCheckViolation):
		return errs.Mark(errs.Mark(err, ErrStatusRejected), errs.ErrConfiguration)
	default:
		return err
	}
}
