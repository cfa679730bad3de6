package consumer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/ecommerce/internal/catalog/domain"
	order "github.com/wyfcoding/ecommerce/internal/order/domain"
	"github.com/wyfcoding/ecommerce/pkg/mq"
)

type recordingStockUpdater struct {
	decrements map[string]int
	errs       map[string]error
}

func newRecordingStockUpdater() *recordingStockUpdater {
	return &recordingStockUpdater{
		decrements: make(map[string]int),
		errs:       make(map[string]error),
	}
}

func (u *recordingStockUpdater) DecrementStock(_ context.Context, productID string, quantity int) error {
	if err, ok := u.errs[productID]; ok {
		return err
	}
	u.decrements[productID] += quantity
	return nil
}

func placedEventMessage(t *testing.T, event order.OrderPlacedEvent) *mq.Message {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	value, err := json.Marshal(order.EventEnvelope{
		EventType: order.EventTypeOrderPlaced,
		Payload:   payload,
	})
	require.NoError(t, err)
	return &mq.Message{Topic: "order-events", Key: event.OrderID, Value: value, Time: time.Now()}
}

func TestHandleOrderPlacedDecrementsStock(t *testing.T) {
	stocks := newRecordingStockUpdater()
	c := NewOrderEventConsumer(nil, stocks, nil)

	msg := placedEventMessage(t, order.OrderPlacedEvent{
		OrderID: "ORD-1",
		Items: []order.OrderItemEvent{
			{ProductID: "p-1", Quantity: 2},
			{ProductID: "p-2", Quantity: 1},
		},
	})

	require.NoError(t, c.Handle(context.Background(), msg))
	assert.Equal(t, 2, stocks.decrements["p-1"])
	assert.Equal(t, 1, stocks.decrements["p-2"])
}

func TestHandleIgnoresOtherEventTypes(t *testing.T) {
	stocks := newRecordingStockUpdater()
	c := NewOrderEventConsumer(nil, stocks, nil)

	payload, err := json.Marshal(order.OrderStatusChangedEvent{OrderID: "ORD-1"})
	require.NoError(t, err)
	value, err := json.Marshal(order.EventEnvelope{
		EventType: order.EventTypeOrderStatusChanged,
		Payload:   payload,
	})
	require.NoError(t, err)

	require.NoError(t, c.Handle(context.Background(), &mq.Message{Value: value}))
	assert.Empty(t, stocks.decrements)
}

func TestHandleToleratesInsufficientStock(t *testing.T) {
	stocks := newRecordingStockUpdater()
	stocks.errs["p-1"] = domain.ErrInsufficientStock
	c := NewOrderEventConsumer(nil, stocks, nil)

	msg := placedEventMessage(t, order.OrderPlacedEvent{
		OrderID: "ORD-1",
		Items: []order.OrderItemEvent{
			{ProductID: "p-1", Quantity: 5},
			{ProductID: "p-2", Quantity: 3},
		},
	})

	// 单个商品库存不足不应中断整单处理
	require.NoError(t, c.Handle(context.Background(), msg))
	assert.Equal(t, 3, stocks.decrements["p-2"])
}

func TestHandleRejectsMalformedPayload(t *testing.T) {
	c := NewOrderEventConsumer(nil, newRecordingStockUpdater(), nil)

	err := c.Handle(context.Background(), &mq.Message{Value: []byte("not json")})
	assert.Error(t, err)
}
