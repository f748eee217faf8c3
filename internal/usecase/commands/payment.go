package commands

import (
	"context"
	"strings"
	"time"

	"homeclean/internal/domain/order"
	"homeclean/internal/pkg/clock"
	"homeclean/internal/pkg/errs"
	"homeclean/internal/pkg/metrics"
	"homeclean/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=payment.go -destination=../../../tests/mock/commands/payment_mock.go -package=commands

// PaymentEvent is one notification from the payment provider.
type PaymentEvent struct {
	OrderID    uuid.UUID
	NextStatus string
	Event      string
	OccurredAt string
}

var paymentEventTargets = map[string]order.Status{
	"payment.succeeded":          order.StatusPaid,
	"payment_intent.succeeded":   order.StatusPaid,
	"checkout.session.completed": order.StatusPaid,
	"charge.succeeded":           order.StatusPaid,
	"payment.processing":         order.StatusPaymentPending,
	"payment_intent.processing":  order.StatusPaymentPending,
	"payment.expired":            order.StatusExpired,
	"checkout.session.expired":   order.StatusExpired,
	"payment.canceled":           order.StatusCancelled,
	"payment_intent.canceled":    order.StatusCancelled,
	"charge.refunded":            order.StatusRefunded,
	"payment.refunded":           order.StatusRefunded,
}

// ResolveTargetStatus picks the requested status. An explicit nextStatus wins over event.
func ResolveTargetStatus(nextStatus, event string) (order.Status, error) {
	if s := strings.TrimSpace(nextStatus); s != "" {
		st, err := order.ParseStatus(s)
		if err != nil {
			return "", errs.Mark(errs.Wrapf(err, "nextStatus %q", s), errs.ErrInvalidInput)
		}
		return st, nil
	}
	if e := strings.ToLower(strings.TrimSpace(event)); e != "" {
		st, ok := paymentEventTargets[e]
		if !ok {
			return "", errs.Mark(errs.Wrapf(ErrUnknownPaymentEvent, "event %q", e), errs.ErrInvalidInput)
		}
		return st, nil
	}
	return "", errs.Mark(ErrMissingTarget, errs.ErrInvalidInput)
}

type PaymentCommands interface {
	ApplyPaymentEvent(ctx context.Context, ev PaymentEvent) (*TransitionResult, error)
}

type paymentCommandsImpl struct {
	clock       clock.Clock
	transitions *transitioner
}

func NewPaymentCommands(uow shared.UnitOfWork, policy *order.Policy, clk clock.Clock, maxAttempts int) PaymentCommands {
	return &paymentCommandsImpl{
		clock:       clk,
		transitions: newTransitioner(uow, policy, clk, maxAttempts),
	}
}

func (c *paymentCommandsImpl) ApplyPaymentEvent(ctx context.Context, ev PaymentEvent) (*TransitionResult, error) {
	res, err := c.apply(ctx, ev)
	switch {
	case err == nil && res.Idempotent:
		metrics.RecordWebhookEvent("idempotent")
	case err == nil:
		metrics.RecordWebhookEvent("applied")
	case errs.Is(err, errs.ErrInvalidInput):
		metrics.RecordWebhookEvent("invalid")
	case errs.Is(err, errs.ErrNotFound):
		metrics.RecordWebhookEvent("not_found")
	case errs.Is(err, errs.ErrConflict):
		metrics.RecordWebhookEvent("rejected")
	default:
		metrics.RecordWebhookEvent("error")
	}
	return res, err
}

func (c *paymentCommandsImpl) apply(ctx context.Context, ev PaymentEvent) (*TransitionResult, error) {
	if ev.OrderID == uuid.Nil {
		return nil, errs.Mark(errs.New("orderId is required"), errs.ErrInvalidInput)
	}
	requested, err := ResolveTargetStatus(ev.NextStatus, ev.Event)
	if err != nil {
		return nil, err
	}
	occurredAt, err := c.occurredAt(ev.OccurredAt)
	if err != nil {
		return nil, err
	}

	return c.transitions.apply(ctx, transitionRequest{
		orderID:    ev.OrderID,
		requested:  requested,
		source:     shared.SourceWebhook,
		occurredAt: occurredAt,
	})
}

func (c *paymentCommandsImpl) occurredAt(raw string) (time.Time, error) {
	if raw == "" {
		return c.clock.Now(), nil
	}
	t, err := clock.ParseTimestamp(raw)
	if err != nil {
		return time.Time{}, errs.Mark(errs.Wrap(err, ErrInvalidOccurredAt.Error()), errs.ErrInvalidInput)
	}
	return t, nil
}
