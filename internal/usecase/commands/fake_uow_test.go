//go:build unit

package commands_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"homeclean/internal/domain/order"
	"homeclean/internal/infra"
	sqlc "homeclean/internal/infra/sqlc/generated"
	"homeclean/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// memoryStore mimics the Postgres store closely enough for the command tests:
// writes inside a failed Within are rolled back.
type memoryStore struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*order.Order
	events []shared.StatusEvent
	locks  []string

	// beforeUpdate runs ahead of each conditional write; returning an error aborts it.
	beforeUpdate func(s *memoryStore, id uuid.UUID) error
	// failInsert replaces the insert outcome.
	failInsert error
	// missingTimestamps makes every statement touching the lifecycle timestamp columns fail with 42703.
	missingTimestamps bool
	txCount           int
	statusOnly        int
	coreReads         int
}

func newMemoryStore(orders ...*order.Order) *memoryStore {
	s := &memoryStore{orders: map[uuid.UUID]*order.Order{}}
	for _, o := range orders {
		s.orders[o.ID()] = o
	}
	return s
}

func (s *memoryStore) get(id uuid.UUID) *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id]
}

// put replaces a stored order as a concurrent writer would.
func (s *memoryStore) put(o *order.Order) {
	s.orders[o.ID()] = o
}

func (s *memoryStore) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txCount++

	snapshot := make(map[uuid.UUID]*order.Order, len(s.orders))
	for k, v := range s.orders {
		snapshot[k] = v
	}
	events := len(s.events)

	if err := fn(ctx, &memoryTx{store: s}); err != nil {
		s.orders = snapshot
		s.events = s.events[:events]
		return err
	}
	return nil
}

type memoryTx struct{ store *memoryStore }

func (t *memoryTx) Orders() shared.OrderRepository              { return (*memoryOrders)(t.store) }
func (t *memoryTx) StatusEvents() shared.StatusEventRepository { return (*memoryEvents)(t.store) }
func (t *memoryTx) DB() sqlc.DBTX                              { return nil }

type memoryOrders memoryStore

func (r *memoryOrders) LockDate(_ context.Context, _ sqlc.DBTX, date time.Time) error {
	r.locks = append(r.locks, date.Format(order.DateLayout))
	return nil
}

func (r *memoryOrders) Insert(_ context.Context, _ sqlc.DBTX, o *order.Order) (uuid.UUID, error) {
	if r.failInsert != nil {
		return uuid.Nil, r.failInsert
	}
	r.orders[o.ID()] = o
	return o.ID(), nil
}

func (r *memoryOrders) GetByID(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*order.Order, error) {
	if r.missingTimestamps {
		return nil, infra.WrapRepoErr("failed to get order", pgError("42703"))
	}
	o, ok := r.orders[id]
	if !ok {
		return nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return o, nil
}

func (r *memoryOrders) GetCoreByID(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*order.Order, error) {
	r.coreReads++
	o, ok := r.orders[id]
	if !ok {
		return nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return o, nil
}

func (r *memoryOrders) ListByDate(_ context.Context, _ sqlc.DBTX, date time.Time, statuses []order.Status) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.orders {
		if o.Schedule().DateString() == date.Format(order.DateLayout) && slices.Contains(statuses, o.Status()) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memoryOrders) UpdateConditional(
	_ context.Context, _ sqlc.DBTX, id uuid.UUID, expected order.Status, patch order.Patch, now time.Time,
) (*order.Order, error) {
	if r.missingTimestamps {
		return nil, infra.WrapRepoErr("failed to update order status", pgError("42703"))
	}
	if r.beforeUpdate != nil {
		if err := r.beforeUpdate((*memoryStore)(r), id); err != nil {
			return nil, err
		}
	}
	o, ok := r.orders[id]
	if !ok || o.Status() != expected {
		return nil, infra.WrapRepoErr("order status changed", nil, infra.KindConflict)
	}
	updated := o.Apply(patch, now)
	r.orders[id] = updated
	return updated, nil
}

func (r *memoryOrders) UpdateStatusOnly(_ context.Context, _ sqlc.DBTX, id uuid.UUID, expected, next order.Status) error {
	r.statusOnly++
	o, ok := r.orders[id]
	if !ok || o.Status() != expected {
		return infra.WrapRepoErr("order status changed", nil, infra.KindConflict)
	}
	r.orders[id] = o.Apply(order.Patch{Status: next}, o.UpdatedAt())
	return nil
}

func (r *memoryOrders) Claim(_ context.Context, _ sqlc.DBTX, id, userID uuid.UUID, now time.Time) error {
	o, ok := r.orders[id]
	if !ok || o.UserID() != nil {
		return infra.WrapRepoErr("order already claimed", nil, infra.KindConflict)
	}
	r.orders[id] = order.Reconstruct(order.ReconstructParams{
		ID:           o.ID(),
		UserID:       &userID,
		Schedule:     o.Schedule(),
		Status:       o.Status(),
		Details:      o.Details(),
		CreatedAt:    o.CreatedAt(),
		PaymentDueAt: o.PaymentDueAt(),
		PaidAt:       o.PaidAt(),
		ConfirmedAt:  o.ConfirmedAt(),
		CompletedAt:  o.CompletedAt(),
		CancelledAt:  o.CancelledAt(),
		UpdatedAt:    now,
	})
	return nil
}

type memoryEvents memoryStore

func (r *memoryEvents) Append(_ context.Context, _ sqlc.DBTX, e shared.StatusEvent) error {
	r.events = append(r.events, e)
	return nil
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code, Message: "simulated " + code}
}
