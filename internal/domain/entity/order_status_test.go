package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("  Preparing ")
	require.NoError(t, err)
	assert.Equal(t, OrderPreparing, status)

	_, err = ParseOrderStatus("shipped")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	_, err = ParseOrderStatus("")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestOrderStatusForwardChain(t *testing.T) {
	chain := []OrderStatus{
		OrderPending, OrderConfirmed, OrderPreparing,
		OrderReady, OrderInDelivery, OrderDelivered,
	}

	for i := 0; i < len(chain)-1; i++ {
		assert.True(t, chain[i].CanTransitionTo(chain[i+1]),
			"%s should advance to %s", chain[i], chain[i+1])
	}

	// Skipping a step is never allowed.
	assert.False(t, OrderPending.CanTransitionTo(OrderPreparing))
	assert.False(t, OrderConfirmed.CanTransitionTo(OrderReady))
	assert.False(t, OrderPreparing.CanTransitionTo(OrderDelivered))

	// Going backwards is never allowed.
	assert.False(t, OrderConfirmed.CanTransitionTo(OrderPending))
	assert.False(t, OrderReady.CanTransitionTo(OrderPreparing))
}

func TestOrderStatusCancellation(t *testing.T) {
	for _, status := range []OrderStatus{
		OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderInDelivery,
	} {
		assert.True(t, status.CanTransitionTo(OrderCancelled),
			"%s should allow cancellation", status)
	}

	assert.False(t, OrderDelivered.CanTransitionTo(OrderCancelled))
	assert.False(t, OrderCancelled.CanTransitionTo(OrderCancelled))
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, OrderDelivered.IsTerminal())
	assert.True(t, OrderCancelled.IsTerminal())
	assert.False(t, OrderInDelivery.IsTerminal())

	assert.False(t, OrderDelivered.CanTransitionTo(OrderPending))
	assert.Empty(t, OrderCancelled.ValidTargets())
}

func TestOrderTransitionToKeepsStatusOnError(t *testing.T) {
	order := &Order{Status: OrderPending}

	err := order.TransitionTo(OrderStatus("teleported"))
	assert.ErrorIs(t, err, ErrUnknownStatus)
	assert.Equal(t, OrderPending, order.Status)

	err = order.TransitionTo(OrderReady)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, OrderPending, order.Status)

	require.NoError(t, order.TransitionTo(OrderConfirmed))
	assert.Equal(t, OrderConfirmed, order.Status)
}

func TestOrderTransitionErrorNamesValidTargets(t *testing.T) {
	order := &Order{Status: OrderConfirmed}

	err := order.TransitionTo(OrderDelivered)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preparing")
	assert.Contains(t, err.Error(), "cancelled")
}

func TestOrderDeletable(t *testing.T) {
	for status, want := range map[OrderStatus]bool{
		OrderPending:    true,
		OrderConfirmed:  true,
		OrderPreparing:  false,
		OrderReady:      false,
		OrderInDelivery: false,
		OrderDelivered:  true,
		OrderCancelled:  true,
	} {
		order := &Order{Status: status}
		assert.Equal(t, want, order.Deletable(), "status %s", status)
	}
}

func TestOrderSubtotal(t *testing.T) {
	order := &Order{Items: []OrderItem{
		{Quantity: 2, UnitPrice: 10.50},
		{Quantity: 1, UnitPrice: 4.25},
	}}

	assert.InDelta(t, 25.25, order.Subtotal(), 0.0001)
}
