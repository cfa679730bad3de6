package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder(status OrderStatus) *Order {
	o := NewOrder(
		"ORD-1", "u1", "chk-1",
		[]OrderItem{{ProductID: "p1", Name: "thing", UnitPrice: decimal.NewFromInt(500), Quantity: 2}},
		CustomerInfo{FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Phone: "9876543210", Address: "12 MG Road", City: "Bengaluru", State: "Karnataka", Pincode: "560001"},
		PaymentMethodCOD,
		decimal.NewFromInt(1000), decimal.NewFromInt(180), decimal.NewFromInt(99), decimal.NewFromInt(1279),
	)
	o.Status = status
	return o
}

func TestNewOrderStartsPending(t *testing.T) {
	o := sampleOrder(OrderStatusPending)
	assert.Equal(t, OrderStatusPending, o.Status)
	require.NoError(t, o.Validate())
}

func TestValidateRejectsEmptyOrder(t *testing.T) {
	o := sampleOrder(OrderStatusPending)
	o.Items = nil
	assert.ErrorIs(t, o.Validate(), ErrEmptyOrder)
}

func TestValidateRejectsBrokenTotal(t *testing.T) {
	o := sampleOrder(OrderStatusPending)
	o.Total = decimal.NewFromInt(1)
	assert.Error(t, o.Validate())
}

func TestHappyPathTransitions(t *testing.T) {
	o := sampleOrder(OrderStatusPending)

	require.NoError(t, o.TransitionTo(OrderStatusProcessing))
	require.NoError(t, o.TransitionTo(OrderStatusShipped))
	require.NoError(t, o.TransitionTo(OrderStatusDelivered))
	assert.True(t, o.Status.IsTerminal())
}

func TestSkippingStatesIsRejected(t *testing.T) {
	// 不允许直接从 PENDING 跳到 DELIVERED
	o := sampleOrder(OrderStatusPending)
	assert.ErrorIs(t, o.TransitionTo(OrderStatusDelivered), ErrInvalidTransition)
	assert.Equal(t, OrderStatusPending, o.Status)
}

func TestCancelFromAnyNonTerminalState(t *testing.T) {
	for _, from := range []OrderStatus{OrderStatusPending, OrderStatusProcessing, OrderStatusShipped} {
		o := sampleOrder(from)
		require.NoError(t, o.TransitionTo(OrderStatusCancelled), "from %s", from)
		assert.Equal(t, OrderStatusCancelled, o.Status)
	}
}

func TestTerminalStatesRejectAllTransitions(t *testing.T) {
	targets := []OrderStatus{OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled}

	for _, terminal := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled} {
		for _, target := range targets {
			o := sampleOrder(terminal)
			assert.ErrorIs(t, o.TransitionTo(target), ErrInvalidTransition, "%s -> %s", terminal, target)
		}
	}
}

func TestUnknownStatusRejected(t *testing.T) {
	o := sampleOrder(OrderStatusPending)
	assert.ErrorIs(t, o.TransitionTo(OrderStatus("REFUNDED")), ErrInvalidTransition)
}

func TestCanBeCancelled(t *testing.T) {
	assert.True(t, sampleOrder(OrderStatusPending).CanBeCancelled())
	assert.True(t, sampleOrder(OrderStatusShipped).CanBeCancelled())
	assert.False(t, sampleOrder(OrderStatusDelivered).CanBeCancelled())
	assert.False(t, sampleOrder(OrderStatusCancelled).CanBeCancelled())
}

func TestNewOrderPlacedEvent(t *testing.T) {
	o := sampleOrder(OrderStatusPending)
	ev := NewOrderPlacedEvent(o)

	assert.Equal(t, "ORD-1", ev.OrderID)
	require.Len(t, ev.Items, 1)
	assert.Equal(t, "p1", ev.Items[0].ProductID)
	assert.Equal(t, 2, ev.Items[0].Quantity)
}
