// Package consumer 消费订单事件，维护商品库存
package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/wyfcoding/ecommerce/internal/catalog/domain"
	order "github.com/wyfcoding/ecommerce/internal/order/domain"
	"github.com/wyfcoding/ecommerce/pkg/logger"
	"github.com/wyfcoding/ecommerce/pkg/mq"
)

// StockUpdater 库存扣减入口
type StockUpdater interface {
	DecrementStock(ctx context.Context, productID string, quantity int) error
}

// MessageSource 消息来源，便于测试替换真实 Kafka 消费者
type MessageSource interface {
	ReadMessage(ctx context.Context) (*mq.Message, error)
}

// OrderEventConsumer 消费订单事件并扣减库存
// outbox 是至少一次投递，重复消息只会出现在进程崩溃后的位点回放窗口内
type OrderEventConsumer struct {
	source MessageSource
	stocks StockUpdater
	dlq    *mq.DeadLetterQueue
}

// NewOrderEventConsumer 创建订单事件消费者
func NewOrderEventConsumer(source MessageSource, stocks StockUpdater, dlq *mq.DeadLetterQueue) *OrderEventConsumer {
	return &OrderEventConsumer{
		source: source,
		stocks: stocks,
		dlq:    dlq,
	}
}

// Run 消费循环，直到 context 取消
func (c *OrderEventConsumer) Run(ctx context.Context) {
	logger.Info(ctx, "Order event consumer started")

	for {
		msg, err := c.source.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				logger.Info(ctx, "Order event consumer stopped")
				return
			}
			logger.Error(ctx, "Failed to read order event", "error", err)
			continue
		}

		if err := c.Handle(ctx, msg); err != nil {
			logger.Error(ctx, "Failed to handle order event", "key", msg.Key, "error", err)
			if c.dlq != nil {
				if dlqErr := c.dlq.Send(ctx, msg, "order event handling failed", err); dlqErr != nil {
					logger.Error(ctx, "Failed to send order event to DLQ", "key", msg.Key, "error", dlqErr)
				}
			}
		}
	}
}

// Handle 处理单条订单事件
// 未知事件类型直接跳过；库存不足记录告警但不阻塞消费
func (c *OrderEventConsumer) Handle(ctx context.Context, msg *mq.Message) error {
	var envelope order.EventEnvelope
	if err := msg.UnmarshalPayload(&envelope); err != nil {
		return err
	}

	if envelope.EventType != order.EventTypeOrderPlaced {
		return nil
	}

	var event order.OrderPlacedEvent
	if err := json.Unmarshal(envelope.Payload, &event); err != nil {
		return err
	}
	defer logger.LogDuration(ctx, "Stock decrement for order", "order_id", event.OrderID)()

	for _, item := range event.Items {
		err := c.stocks.DecrementStock(ctx, item.ProductID, item.Quantity)
		switch {
		case errors.Is(err, domain.ErrInsufficientStock):
			// 超卖已经发生在下单侧，这里只能记录并放行
			logger.Warn(ctx, "Stock went below ordered quantity",
				"order_id", event.OrderID,
				"product_id", item.ProductID,
				"quantity", item.Quantity,
			)
		case errors.Is(err, domain.ErrProductNotFound):
			logger.Warn(ctx, "Ordered product missing from catalog",
				"order_id", event.OrderID,
				"product_id", item.ProductID,
			)
		case err != nil:
			return err
		}
	}

	logger.Info(ctx, "Stock decremented for order", "order_id", event.OrderID, "items", len(event.Items))
	return nil
}
