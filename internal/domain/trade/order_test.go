package trade

import (
	"testing"

	"github.com/atolye/backend/internal/domain/costing"
	"github.com/atolye/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder(uuid.New(), "ORD-2026-001", uuid.New(), uuid.New(),
		valueobject.NewMoneyTRYFromFloat(36), 3, costing.MarginPercent, decimal.NewFromInt(10), StageCosts{})
	require.NoError(t, err)
	return order
}

func TestNewOrder(t *testing.T) {
	t.Run("snapshots the pricing cascade", func(t *testing.T) {
		// 36 * 3 = 108, + 10% = 118.80
		order := newTestOrder(t)

		assert.Equal(t, OrderStatusQuoteCreated, order.Status)
		assert.Equal(t, "36", order.BaseAmount.String())
		assert.Equal(t, "10.8", order.ProfitAmount.String())
		assert.Equal(t, "118.8", order.TotalAmount.String())
		assert.Equal(t, valueobject.TRY, order.Currency)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), "ORD-1", uuid.New(), uuid.New(),
			valueobject.ZeroTRY(), 0, costing.MarginPercent, decimal.Zero, StageCosts{})
		require.Error(t, err)
	})

	t.Run("rejects empty order number", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), "", uuid.New(), uuid.New(),
			valueobject.ZeroTRY(), 1, costing.MarginPercent, decimal.Zero, StageCosts{})
		require.Error(t, err)
	})
}

func TestOrder_Reprice(t *testing.T) {
	order := newTestOrder(t)

	// quantity and margin change; every snapshot field is recomputed
	err := order.Reprice(valueobject.NewMoneyTRYFromFloat(40), 5, costing.MarginAmount, decimal.NewFromInt(25),
		StageCosts{FabricPrice: decimal.NewFromInt(12)})
	require.NoError(t, err)

	assert.Equal(t, int64(5), order.Quantity)
	assert.Equal(t, "40", order.BaseAmount.String())
	assert.Equal(t, "25", order.ProfitAmount.String())
	assert.Equal(t, "225", order.TotalAmount.String())
	assert.Equal(t, "12", order.FabricPrice.String())

	// total = base*qty + profit holds after every reprice
	expected := order.BaseAmount.Mul(decimal.NewFromInt(order.Quantity)).Add(order.ProfitAmount)
	assert.True(t, order.TotalAmount.Equal(expected))
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	t.Run("workflow stages are free-form", func(t *testing.T) {
		assert.True(t, OrderStatusQuoteCreated.CanTransitionTo(OrderStatusDelivered))
		assert.True(t, OrderStatusDelivered.CanTransitionTo(OrderStatusQuoteSent))
		assert.True(t, OrderStatusProductionDone.CanTransitionTo(OrderStatusQuoteAccepted))
	})

	t.Run("delivered orders cannot be cancelled", func(t *testing.T) {
		assert.False(t, OrderStatusDelivered.CanTransitionTo(OrderStatusCancelled))
		assert.True(t, OrderStatusProductionDone.CanTransitionTo(OrderStatusCancelled))
	})

	t.Run("cancelled orders only reactivate to the initial stage", func(t *testing.T) {
		assert.True(t, OrderStatusCancelled.CanTransitionTo(OrderStatusQuoteCreated))
		assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusQuoteSent))
		assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusDelivered))
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("valid transition emits event", func(t *testing.T) {
		order := newTestOrder(t)
		order.ClearDomainEvents()

		require.NoError(t, order.ChangeStatus(OrderStatusQuoteSent))

		assert.Equal(t, OrderStatusQuoteSent, order.Status)
		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderStatusChanged, events[0].EventType())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		order := newTestOrder(t)
		require.Error(t, order.ChangeStatus(OrderStatus("UNKNOWN")))
	})

	t.Run("cancel and reactivate", func(t *testing.T) {
		order := newTestOrder(t)

		require.NoError(t, order.Cancel())
		assert.Equal(t, OrderStatusCancelled, order.Status)

		require.NoError(t, order.Reactivate())
		assert.Equal(t, OrderStatusQuoteCreated, order.Status)
	})

	t.Run("reactivate requires cancelled status", func(t *testing.T) {
		order := newTestOrder(t)
		require.Error(t, order.Reactivate())
	})
}
