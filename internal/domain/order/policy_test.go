//go:build unit

package order_test

import (
	"errors"
	"testing"
	"time"

	"homeclean/internal/domain/order"
	"homeclean/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPolicy(t *testing.T) *order.Policy {
	t.Helper()
	hours, err := order.NewWorkingHours("08:00", "18:00")
	require.NoError(t, err)
	p, err := order.NewPolicy(hours, 30*time.Minute)
	require.NoError(t, err)
	return p
}

func TestEffectiveStatus(t *testing.T) {
	p := newPolicy(t)
	now := builder.BaseTime

	t.Run("expiry is derived on read", func(t *testing.T) {
		o := builder.NewOrderBuilder().WithCreatedAt(now.Add(-40 * time.Minute)).BuildStored()

		assert.Equal(t, order.StatusExpired, p.EffectiveStatus(o, now))
		assert.Equal(t, order.StatusAwaitingPayment, o.Status(), "stored status is untouched")
	})

	t.Run("still inside the hold window", func(t *testing.T) {
		o := builder.NewOrderBuilder().WithCreatedAt(now.Add(-10 * time.Minute)).BuildStored()
		assert.Equal(t, order.StatusAwaitingPayment, p.EffectiveStatus(o, now))
	})

	t.Run("deadline boundary counts as expired", func(t *testing.T) {
		o := builder.NewOrderBuilder().WithCreatedAt(now.Add(-30 * time.Minute)).BuildStored()
		assert.Equal(t, order.StatusExpired, p.EffectiveStatus(o, now))
	})

	t.Run("explicit payment due date wins", func(t *testing.T) {
		o := builder.NewOrderBuilder().
			WithCreatedAt(now.Add(-40 * time.Minute)).
			WithPaymentDueAt(now.Add(time.Hour)).
			BuildStored()
		assert.Equal(t, order.StatusAwaitingPayment, p.EffectiveStatus(o, now))
	})

	t.Run("paid rows never expire", func(t *testing.T) {
		o := builder.NewOrderBuilder().
			WithCreatedAt(now.Add(-2 * time.Hour)).
			WithPaidAt(now.Add(-time.Hour)).
			BuildStored()
		assert.Equal(t, order.StatusAwaitingPayment, p.EffectiveStatus(o, now))
	})

	t.Run("other statuses pass through", func(t *testing.T) {
		o := builder.NewOrderBuilder().WithCreatedAt(now.Add(-2 * time.Hour)).WithStatus(order.StatusPaymentPending).BuildStored()
		assert.Equal(t, order.StatusPaymentPending, p.EffectiveStatus(o, now))
	})
}

func TestBlocks(t *testing.T) {
	p := newPolicy(t)
	now := builder.BaseTime

	for _, s := range order.AllStatuses {
		o := builder.NewOrderBuilder().WithStatus(s).WithCreatedAt(now.Add(-time.Minute)).BuildStored()
		switch s {
		case order.StatusAwaitingPayment, order.StatusPaymentPending, order.StatusReserved,
			order.StatusPaid, order.StatusInProgress:
			assert.True(t, p.Blocks(o, now), "%s should block", s)
		default:
			assert.False(t, p.Blocks(o, now), "%s should not block", s)
		}
	}

	stale := builder.NewOrderBuilder().WithCreatedAt(now.Add(-45 * time.Minute)).BuildStored()
	assert.False(t, p.Blocks(stale, now))
}

func TestAdmit(t *testing.T) {
	p := newPolicy(t)
	now := builder.BaseTime

	t.Run("booking success on an empty day", func(t *testing.T) {
		proposed := mustSchedule(t, "2026-03-02", "10:00", 3)
		require.NoError(t, p.Admit(proposed, nil, now))
	})

	t.Run("booking conflict with a reserved order", func(t *testing.T) {
		existing := builder.NewOrderBuilder().WithSlot("2026-03-02", "10:00", 3).AsReserved().BuildStored()
		proposed := mustSchedule(t, "2026-03-02", "11:00", 2)

		err := p.Admit(proposed, []*order.Order{existing}, now)
		require.ErrorIs(t, err, order.ErrSlotConflict)

		var conflict *order.SlotConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, existing.ID(), conflict.OrderID)
		assert.Equal(t, order.Slot{Date: "2026-03-02", Start: 600, End: 780}, conflict.Slot)
	})

	t.Run("expired hold releases the slot", func(t *testing.T) {
		stale := builder.NewOrderBuilder().
			WithSlot("2026-03-02", "10:00", 2).
			WithCreatedAt(now.Add(-45 * time.Minute)).
			BuildStored()
		proposed := mustSchedule(t, "2026-03-02", "10:30", 1)

		require.NoError(t, p.Admit(proposed, []*order.Order{stale}, now))
	})

	t.Run("fresh hold still blocks", func(t *testing.T) {
		held := builder.NewOrderBuilder().
			WithSlot("2026-03-02", "10:00", 2).
			WithCreatedAt(now.Add(-5 * time.Minute)).
			BuildStored()
		proposed := mustSchedule(t, "2026-03-02", "10:30", 1)

		require.ErrorIs(t, p.Admit(proposed, []*order.Order{held}, now), order.ErrSlotConflict)
	})

	t.Run("touching slots are admitted", func(t *testing.T) {
		existing := builder.NewOrderBuilder().WithSlot("2026-03-02", "10:00", 2).AsReserved().BuildStored()
		proposed := mustSchedule(t, "2026-03-02", "12:00", 2)

		require.NoError(t, p.Admit(proposed, []*order.Order{existing}, now))
	})

	t.Run("cancelled orders never block", func(t *testing.T) {
		existing := builder.NewOrderBuilder().WithSlot("2026-03-02", "10:00", 2).WithStatus(order.StatusCancelled).BuildStored()
		proposed := mustSchedule(t, "2026-03-02", "10:00", 2)

		require.NoError(t, p.Admit(proposed, []*order.Order{existing}, now))
	})

	t.Run("out of working hours is rejected before overlap", func(t *testing.T) {
		existing := builder.NewOrderBuilder().WithSlot("2026-03-02", "16:00", 2).AsReserved().BuildStored()
		proposed := mustSchedule(t, "2026-03-02", "17:00", 2)

		err := p.Admit(proposed, []*order.Order{existing}, now)
		require.ErrorIs(t, err, order.ErrInvalidSchedule)
		assert.NotErrorIs(t, err, order.ErrSlotConflict)
	})
}

func TestBusySlots(t *testing.T) {
	p := newPolicy(t)
	now := builder.BaseTime

	orders := []*order.Order{
		builder.NewOrderBuilder().WithSlot("2026-03-02", "08:00", 1).AsReserved().BuildStored(),
		builder.NewOrderBuilder().WithSlot("2026-03-02", "10:00", 1).WithCreatedAt(now.Add(-time.Hour)).BuildStored(),
		builder.NewOrderBuilder().WithSlot("2026-03-02", "13:00", 2).WithStatus(order.StatusInProgress).BuildStored(),
	}

	assert.Equal(t, []order.Slot{
		{Date: "2026-03-02", Start: 480, End: 540},
		{Date: "2026-03-02", Start: 780, End: 900},
	}, p.BusySlots(orders, now))
}

func TestNewPolicy(t *testing.T) {
	hours, err := order.NewWorkingHours("08:00", "18:00")
	require.NoError(t, err)
	_, err = order.NewPolicy(hours, 0)
	assert.ErrorIs(t, err, order.ErrInvalidSchedule)
}
