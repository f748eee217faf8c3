package commands

import (
	"context"

	"homeclean/internal/domain/order"
	"homeclean/internal/domain/user"
	"homeclean/internal/pkg/clock"
	"homeclean/internal/pkg/errs"
	"homeclean/internal/pkg/metrics"
	"homeclean/internal/pkg/token"
	"homeclean/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=order.go -destination=../../../tests/mock/commands/order_mock.go -package=commands

type CreateOrderInput struct {
	ScheduledDate  string
	ScheduledTime  string
	EstimatedHours float64
	Details        order.Details
	UserID         *uuid.UUID
}

type CreateOrderResult struct {
	OrderID uuid.UUID
	// PendingToken is returned once; only its hash is stored.
	PendingToken string
	Status       order.Status
}

// Actor is whoever asks for a transition outside the webhook.
type Actor struct {
	UserID       *uuid.UUID
	Role         user.Role
	PendingToken string
}

type OrderCommands interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error)
	ClaimOrder(ctx context.Context, orderID, userID uuid.UUID, pendingToken string) error
	CancelOrder(ctx context.Context, orderID uuid.UUID, actor Actor) (*TransitionResult, error)
	ChangeStatus(ctx context.Context, orderID uuid.UUID, rawStatus string, actor Actor) (*TransitionResult, error)
}

type orderCommandsImpl struct {
	uow         shared.UnitOfWork
	policy      *order.Policy
	tokens      token.Issuer
	clock       clock.Clock
	transitions *transitioner
}

func NewOrderCommands(
	uow shared.UnitOfWork,
	policy *order.Policy,
	tokens token.Issuer,
	clk clock.Clock,
	maxAttempts int,
) OrderCommands {
	return &orderCommandsImpl{
		uow:         uow,
		policy:      policy,
		tokens:      tokens,
		clock:       clk,
		transitions: newTransitioner(uow, policy, clk, maxAttempts),
	}
}

func (c *orderCommandsImpl) CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error) {
	schedule, err := order.NewSchedule(input.ScheduledDate, input.ScheduledTime, input.EstimatedHours)
	if err != nil {
		metrics.RecordAdmission("invalid")
		return nil, classify(err)
	}
	if err := schedule.Within(c.policy.Hours); err != nil {
		metrics.RecordAdmission("invalid")
		return nil, classify(err)
	}
	if err := input.Details.Validate(); err != nil {
		metrics.RecordAdmission("invalid")
		return nil, classify(err)
	}

	plain, hash, err := c.tokens.Issue()
	if err != nil {
		metrics.RecordAdmission("error")
		return nil, errs.Wrap(err, "issue pending token")
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Orders().LockDate(ctx, tx.DB(), schedule.Date()); err != nil {
			return err
		}
		sameDay, err := tx.Orders().ListByDate(ctx, tx.DB(), schedule.Date(), order.CandidateStatuses())
		if err != nil {
			return err
		}

		now := c.clock.Now()
		if err := c.policy.Admit(schedule, sameDay, now); err != nil {
			return err
		}

		o, err := order.NewOrder(schedule, input.Details, input.UserID, hash, now)
		if err != nil {
			return err
		}
		id, err = tx.Orders().Insert(ctx, tx.DB(), o)
		if err != nil {
			return err
		}
		return tx.StatusEvents().Append(ctx, tx.DB(), shared.StatusEvent{
			OrderID:    id,
			To:         order.StatusAwaitingPayment,
			Source:     shared.SourceCustomer,
			OccurredAt: now,
		})
	})
	if err != nil {
		err = classify(err)
		switch {
		case errs.Is(err, order.ErrSlotConflict):
			metrics.RecordAdmission("conflict")
		case errs.Is(err, errs.ErrInvalidSchedule), errs.Is(err, errs.ErrInvalidInput):
			metrics.RecordAdmission("invalid")
		default:
			metrics.RecordAdmission("error")
		}
		return nil, err
	}

	metrics.RecordAdmission("admitted")
	return &CreateOrderResult{
		OrderID:      id,
		PendingToken: plain,
		Status:       order.StatusAwaitingPayment,
	}, nil
}

// ClaimOrder links an anonymous order to userID when pendingToken matches its stored hash.
func (c *orderCommandsImpl) ClaimOrder(ctx context.Context, orderID, userID uuid.UUID, pendingToken string) error {
	if pendingToken == "" {
		return errs.Mark(ErrPendingTokenInvalid, errs.ErrInvalidInput)
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().GetByID(ctx, tx.DB(), orderID)
		if err != nil {
			return err
		}
		if o.IsOwnedBy(userID) {
			return nil
		}
		if !o.IsClaimable() {
			return errs.Mark(ErrOrderAlreadyClaimed, errs.ErrConflict)
		}
		if err := c.tokens.Verify(o.PendingTokenHash(), pendingToken); err != nil {
			return err
		}
		return tx.Orders().Claim(ctx, tx.DB(), orderID, userID, c.clock.Now())
	})
	if err != nil {
		return classify(err)
	}
	return nil
}

func (c *orderCommandsImpl) CancelOrder(ctx context.Context, orderID uuid.UUID, actor Actor) (*TransitionResult, error) {
	if actor.UserID == nil && actor.PendingToken == "" {
		return nil, errs.Mark(ErrOrderNotOwned, errs.ErrUnauthorized)
	}
	source := shared.SourceCustomer
	if actor.UserID != nil && actor.Role.CanManageOrders() {
		source = shared.SourceStaff
	}

	return c.transitions.apply(ctx, transitionRequest{
		orderID:    orderID,
		requested:  order.StatusCancelled,
		source:     source,
		occurredAt: c.clock.Now(),
		authorize:  c.authorizeCustomer(actor),
	})
}

func (c *orderCommandsImpl) ChangeStatus(ctx context.Context, orderID uuid.UUID, rawStatus string, actor Actor) (*TransitionResult, error) {
	if actor.UserID == nil || !actor.Role.CanManageOrders() {
		return nil, errs.Mark(ErrNotStaff, errs.ErrForbidden)
	}
	requested, err := order.ParseStatus(rawStatus)
	if err != nil {
		return nil, classify(err)
	}

	return c.transitions.apply(ctx, transitionRequest{
		orderID:    orderID,
		requested:  requested,
		source:     shared.SourceStaff,
		occurredAt: c.clock.Now(),
	})
}

// authorizeCustomer lets staff, the owner, or the pending-token holder through.
// Anyone else sees not-found so order ids cannot be enumerated.
func (c *orderCommandsImpl) authorizeCustomer(actor Actor) func(*order.Order) error {
	return func(o *order.Order) error {
		if actor.UserID != nil && (actor.Role.CanManageOrders() || o.IsOwnedBy(*actor.UserID)) {
			return nil
		}
		if actor.PendingToken != "" && o.PendingTokenHash() != "" &&
			c.tokens.Verify(o.PendingTokenHash(), actor.PendingToken) == nil {
			return nil
		}
		return errs.Mark(ErrOrderNotFound, errs.ErrNotFound)
	}
}
