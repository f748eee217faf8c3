//go:build unit

package order_test

import (
	"testing"

	"homeclean/internal/domain/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    order.Status
		wantErr error
	}{
		{name: "canonical", raw: "paid", want: order.StatusPaid},
		{name: "legacy pending", raw: "pending", want: order.StatusAwaitingPayment},
		{name: "legacy confirmed", raw: "confirmed", want: order.StatusReserved},
		{name: "mixed case and spaces", raw: "  In_Progress ", want: order.StatusInProgress},
		{name: "legacy upper case", raw: "CONFIRMED", want: order.StatusReserved},
		{name: "unknown", raw: "shipped", wantErr: order.ErrUnknownStatus},
		{name: "empty", raw: "", wantErr: order.ErrUnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := order.ParseStatus(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStoredSpellings(t *testing.T) {
	assert.ElementsMatch(t, []string{"awaiting_payment", "pending"}, order.StatusAwaitingPayment.StoredSpellings())
	assert.ElementsMatch(t, []string{"reserved", "confirmed"}, order.StatusReserved.StoredSpellings())
	assert.Equal(t, []string{"paid"}, order.StatusPaid.StoredSpellings())
}

func TestTransitionTable(t *testing.T) {
	t.Run("every status has an entry", func(t *testing.T) {
		for _, s := range order.AllStatuses {
			targets, ok := order.AllowedTargets(s)
			assert.True(t, ok, "missing table entry for %s", s)
			for _, to := range targets {
				assert.True(t, to.IsValid(), "%s -> %s targets a non-canonical status", s, to)
			}
		}
	})

	t.Run("refunded is terminal", func(t *testing.T) {
		targets, ok := order.AllowedTargets(order.StatusRefunded)
		require.True(t, ok)
		assert.Empty(t, targets)
		assert.True(t, order.StatusRefunded.IsTerminal())
	})

	t.Run("no direct jump to completed", func(t *testing.T) {
		assert.False(t, order.CanTransition(order.StatusAwaitingPayment, order.StatusCompleted))
	})

	t.Run("aliases never appear in the table", func(t *testing.T) {
		assert.False(t, order.CanTransition("pending", order.StatusPaid))
		assert.False(t, order.CanTransition(order.StatusPaid, "confirmed"))
	})

	t.Run("returned targets are a copy", func(t *testing.T) {
		targets, _ := order.AllowedTargets(order.StatusPaid)
		targets[0] = order.StatusRefunded
		again, _ := order.AllowedTargets(order.StatusPaid)
		assert.Equal(t, order.StatusReserved, again[0])
	})

	t.Run("documented transitions", func(t *testing.T) {
		cases := []struct {
			from, to order.Status
			ok       bool
		}{
			{order.StatusAwaitingPayment, order.StatusPaid, true},
			{order.StatusPaymentPending, order.StatusExpired, true},
			{order.StatusReserved, order.StatusPaymentPending, true},
			{order.StatusCompleted, order.StatusRefunded, true},
			{order.StatusExpired, order.StatusCancelled, true},
			{order.StatusExpired, order.StatusPaid, false},
			{order.StatusCancelled, order.StatusPaid, false},
			{order.StatusCompleted, order.StatusCancelled, false},
		}
		for _, c := range cases {
			assert.Equal(t, c.ok, order.CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
		}
	})
}
