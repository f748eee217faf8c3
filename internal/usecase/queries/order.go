package queries

import (
	"context"
	"time"

	"homeclean/internal/domain/order"
	"homeclean/internal/domain/user"
	"homeclean/internal/infra"
	"homeclean/internal/pkg/clock"
	"homeclean/internal/pkg/errs"
	"homeclean/internal/pkg/token"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound   = errs.New("order not found")
	ErrNoCredentials   = errs.New("order access requires a bearer token or pending token")
	ErrOrderReadFailed = errs.New("order read failed")
)

// OrderView is the read model; Status is always the effective status.
type OrderView struct {
	ID             uuid.UUID
	UserID         *uuid.UUID
	ScheduledDate  string
	ScheduledTime  string
	EndTime        string
	EstimatedHours float64
	Status         string
	StoredStatus   string
	AllowedNext    []string
	ServiceType    string
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	Address        string
	Notes          string
	PriceCents     int64
	Extras         []string
	CreatedAt      time.Time
	PaymentDueAt   time.Time
	PaidAt         *time.Time
	ConfirmedAt    *time.Time
	CompletedAt    *time.Time
	CancelledAt    *time.Time
	UpdatedAt      time.Time
	History        []*StatusEventView
}

type StatusEventView struct {
	FromStatus *string
	ToStatus   string
	Source     string
	OccurredAt time.Time
}

type SlotView struct {
	Start string
	End   string
}

type AvailabilityView struct {
	Date         string
	WorkdayStart string
	WorkdayEnd   string
	Busy         []SlotView
}

// Viewer carries whatever credentials the caller presented.
type Viewer struct {
	UserID       *uuid.UUID
	Role         user.Role
	PendingToken string
}

func (v Viewer) hasCredentials() bool {
	return v.UserID != nil || v.PendingToken != ""
}

//go:generate mockgen -source=order.go -destination=../../../tests/mock/queries/order_mock.go -package=queries

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	FindByDate(ctx context.Context, date time.Time, statuses []order.Status) ([]*order.Order, error)
	FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*order.Order, error)
	FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*order.Order, error)
	FindEvents(ctx context.Context, orderID uuid.UUID) ([]*StatusEventView, error)
}

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, viewer Viewer) (*OrderView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error)
	Availability(ctx context.Context, date string) (*AvailabilityView, error)
}

type orderQueriesImpl struct {
	store  OrderReadStore
	policy *order.Policy
	tokens token.Issuer
	clock  clock.Clock
}

func NewOrderQueries(store OrderReadStore, policy *order.Policy, tokens token.Issuer, clk clock.Clock) OrderQueries {
	return &orderQueriesImpl{
		store:  store,
		policy: policy,
		tokens: tokens,
		clock:  clk,
	}
}

// GetByID hides orders the viewer may not see behind not-found.
func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, viewer Viewer) (*OrderView, error) {
	if !viewer.hasCredentials() {
		return nil, errs.Mark(ErrNoCredentials, errs.ErrUnauthorized)
	}

	o, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(ErrOrderNotFound, errs.ErrNotFound)
		}
		return nil, errs.Mark(err, ErrOrderReadFailed)
	}
	if !q.canView(o, viewer) {
		return nil, errs.Mark(ErrOrderNotFound, errs.ErrNotFound)
	}

	events, err := q.store.FindEvents(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrOrderReadFailed)
	}

	view := NewOrderView(o, q.policy, q.clock.Now())
	view.History = events
	return view, nil
}

func (q *orderQueriesImpl) canView(o *order.Order, viewer Viewer) bool {
	if viewer.UserID != nil {
		if viewer.Role.CanManageOrders() || o.IsOwnedBy(*viewer.UserID) {
			return true
		}
	}
	if viewer.PendingToken != "" && o.PendingTokenHash() != "" {
		return q.tokens.Verify(o.PendingTokenHash(), viewer.PendingToken) == nil
	}
	return false
}

func (q *orderQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error) {
	limit = ValidateLimit(limit)

	var rows []*order.Order
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.FindByUserFirstPage(ctx, userID, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, errs.Mark(errs.Wrap(derr, "decode cursor"), errs.ErrInvalidInput)
		}
		rows, err = q.store.FindByUserKeyset(ctx, userID, lastCreatedAt, lastID, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	}
	if err != nil {
		return nil, nil, errs.Mark(err, ErrOrderReadFailed)
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt(), last.ID())}
		rows = rows[:limit]
	}

	now := q.clock.Now()
	views := make([]*OrderView, len(rows))
	for i, o := range rows {
		views[i] = NewOrderView(o, q.policy, now)
	}
	return views, next, nil
}

// Availability lists the slots of a date that admission control would treat as taken.
func (q *orderQueriesImpl) Availability(ctx context.Context, date string) (*AvailabilityView, error) {
	d, err := order.ParseDate(date)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "availability"), errs.ErrInvalidSchedule)
	}

	orders, err := q.store.FindByDate(ctx, d, order.CandidateStatuses())
	if err != nil {
		return nil, errs.Mark(err, ErrOrderReadFailed)
	}

	busy := q.policy.BusySlots(orders, q.clock.Now())
	slots := make([]SlotView, len(busy))
	for i, s := range busy {
		slots[i] = SlotView{Start: order.FormatClock(s.Start), End: order.FormatClock(s.End)}
	}
	return &AvailabilityView{
		Date:         d.Format(order.DateLayout),
		WorkdayStart: order.FormatClock(q.policy.Hours.Start()),
		WorkdayEnd:   order.FormatClock(q.policy.Hours.End()),
		Busy:         slots,
	}, nil
}

// NewOrderView derives the read model at now using the same effective status as admission.
func NewOrderView(o *order.Order, p *order.Policy, now time.Time) *OrderView {
	s := o.Schedule()
	d := o.Details()
	effective := p.EffectiveStatus(o, now)

	next, _ := order.AllowedTargets(effective)
	allowed := make([]string, len(next))
	for i, st := range next {
		allowed[i] = st.String()
	}
	extras := d.Extras
	if extras == nil {
		extras = []string{}
	}

	return &OrderView{
		ID:             o.ID(),
		UserID:         o.UserID(),
		ScheduledDate:  s.DateString(),
		ScheduledTime:  s.StartClock(),
		EndTime:        order.FormatClock(s.EndMinute()),
		EstimatedHours: s.EstimatedHours(),
		Status:         effective.String(),
		StoredStatus:   o.Status().String(),
		AllowedNext:    allowed,
		ServiceType:    d.ServiceType,
		CustomerName:   d.CustomerName,
		CustomerEmail:  d.CustomerEmail,
		CustomerPhone:  d.CustomerPhone,
		Address:        d.Address,
		Notes:          d.Notes,
		PriceCents:     d.PriceCents,
		Extras:         extras,
		CreatedAt:      o.CreatedAt(),
		PaymentDueAt:   p.PaymentDeadline(o),
		PaidAt:         o.PaidAt(),
		ConfirmedAt:    o.ConfirmedAt(),
		CompletedAt:    o.CompletedAt(),
		CancelledAt:    o.CancelledAt(),
		UpdatedAt:      o.UpdatedAt(),
	}
}
