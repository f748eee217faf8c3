package commands

import (
	"context"
	"log/slog"
	"time"

	"homeclean/internal/domain/order"
	"homeclean/internal/infra"
	"homeclean/internal/pkg/clock"
	"homeclean/internal/pkg/errs"
	"homeclean/internal/pkg/metrics"
	"homeclean/internal/usecase/shared"

	"github.com/google/uuid"
)

type TransitionResult struct {
	OrderID    uuid.UUID
	From       order.Status
	To         order.Status
	Idempotent bool
	Order      *order.Order
}

type transitionRequest struct {
	orderID    uuid.UUID
	requested  order.Status
	source     shared.EventSource
	occurredAt time.Time
	// authorize runs against the freshly read order before evaluation.
	authorize func(*order.Order) error
}

// transitioner applies one status change with read-evaluate-conditional-write semantics.
type transitioner struct {
	uow         shared.UnitOfWork
	policy      *order.Policy
	clock       clock.Clock
	maxAttempts int
}

func newTransitioner(uow shared.UnitOfWork, policy *order.Policy, clk clock.Clock, maxAttempts int) *transitioner {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &transitioner{uow: uow, policy: policy, clock: clk, maxAttempts: maxAttempts}
}

func (t *transitioner) apply(ctx context.Context, req transitionRequest) (*TransitionResult, error) {
	res, err := t.run(ctx, req, false)
	if err != nil && infra.IsKind(err, infra.KindUndefinedColumn) {
		// The failed statement aborted the transaction, so the reduced write needs a new one.
		slog.WarnContext(ctx, "order timestamp columns unavailable, retrying with status only",
			"order_id", req.orderID.String(),
			"to", req.requested.String(),
			"error", err.Error())
		metrics.RecordTransitionRetry("schema_drift")
		res, err = t.run(ctx, req, true)
	}

	result := "applied"
	switch {
	case err != nil && errs.Is(classify(err), errs.ErrConflict):
		result = "rejected"
	case err != nil:
		result = "error"
	case res.Idempotent:
		result = "idempotent"
	}
	metrics.RecordTransition(string(req.source), req.requested.String(), result)

	if err != nil {
		return nil, classify(err)
	}
	return res, nil
}

func (t *transitioner) run(ctx context.Context, req transitionRequest, statusOnly bool) (*TransitionResult, error) {
	var result *TransitionResult
	err := t.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		load := tx.Orders().GetByID
		if statusOnly {
			load = tx.Orders().GetCoreByID
		}
		for attempt := 1; attempt <= t.maxAttempts; attempt++ {
			current, err := load(ctx, tx.DB(), req.orderID)
			if err != nil {
				return err
			}
			if req.authorize != nil {
				if err := req.authorize(current); err != nil {
					return err
				}
			}

			now := t.clock.Now()
			tr, err := t.policy.EvaluateTransition(current, req.requested, now)
			if err != nil {
				return err
			}
			if tr.Idempotent {
				result = &TransitionResult{OrderID: req.orderID, From: tr.From, To: tr.To, Idempotent: true, Order: current}
				return nil
			}

			// The stored value may lag the effective one (lazy expiry), so match on what is stored.
			updated, err := t.write(ctx, tx, current, tr.Patch, now, statusOnly)
			if infra.IsKind(err, infra.KindConflict) {
				slog.InfoContext(ctx, "order changed between read and write, re-evaluating",
					"order_id", req.orderID.String(),
					"attempt", attempt)
				metrics.RecordTransitionRetry("concurrent_update")
				continue
			}
			if err != nil {
				return err
			}

			from := tr.From
			if err := tx.StatusEvents().Append(ctx, tx.DB(), shared.StatusEvent{
				OrderID:    req.orderID,
				From:       &from,
				To:         tr.To,
				Source:     req.source,
				OccurredAt: req.occurredAt,
			}); err != nil {
				return err
			}

			result = &TransitionResult{OrderID: req.orderID, From: tr.From, To: tr.To, Order: updated}
			return nil
		}
		return errs.Mark(ErrConcurrentUpdate, errs.ErrConflict)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (t *transitioner) write(
	ctx context.Context,
	tx shared.Tx,
	current *order.Order,
	patch order.Patch,
	now time.Time,
	statusOnly bool,
) (*order.Order, error) {
	if statusOnly {
		reduced := patch.WithoutTimestamps()
		if err := tx.Orders().UpdateStatusOnly(ctx, tx.DB(), current.ID(), current.Status(), reduced.Status); err != nil {
			return nil, err
		}
		return current.Apply(reduced, now), nil
	}
	return tx.Orders().UpdateConditional(ctx, tx.DB(), current.ID(), current.Status(), patch, now)
}
