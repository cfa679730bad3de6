package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// EventEnvelope 消息总线上事件的外层信封，消费方按 event_type 分发
type EventEnvelope struct {
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
}

// OrderPlacedEvent 订单创建事件
type OrderPlacedEvent struct {
	OrderID       string           `json:"order_id"`
	UserID        string           `json:"user_id"`
	Items         []OrderItemEvent `json:"items"`
	PaymentMethod PaymentMethod    `json:"payment_method"`
	Total         decimal.Decimal  `json:"total"`
	Timestamp     time.Time        `json:"timestamp"`
}

// OrderItemEvent 事件中的行项目
type OrderItemEvent struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderStatusChangedEvent 订单状态变更事件
type OrderStatusChangedEvent struct {
	OrderID   string      `json:"order_id"`
	UserID    string      `json:"user_id"`
	From      OrderStatus `json:"from"`
	To        OrderStatus `json:"to"`
	Timestamp time.Time   `json:"timestamp"`
}

// 事件类型名，outbox 与消费方共用
const (
	EventTypeOrderPlaced        = "OrderPlacedEvent"
	EventTypeOrderStatusChanged = "OrderStatusChangedEvent"
)

// NewOrderPlacedEvent 从订单快照构造创建事件
func NewOrderPlacedEvent(o *Order) OrderPlacedEvent {
	items := make([]OrderItemEvent, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemEvent{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return OrderPlacedEvent{
		OrderID:       o.OrderID,
		UserID:        o.UserID,
		Items:         items,
		PaymentMethod: o.PaymentMethod,
		Total:         o.Total,
		Timestamp:     time.Now(),
	}
}
