package domain

import "context"

// EventPublisher 订单事件发布接口
// 实现方须保证与订单写入同一事务（outbox 模式）
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error
	PublishOrderStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error
}
