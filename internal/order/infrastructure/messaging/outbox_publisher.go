// Package messaging 订单事件的 outbox 发布与中继
package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wyfcoding/ecommerce/internal/order/domain"
	"github.com/wyfcoding/ecommerce/pkg/db"
)

// Outbox 消息状态
const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

// OutboxMessage 事务性 outbox 消息
// 与订单写入同一事务落库，由 OutboxRelay 异步投递到 Kafka
type OutboxMessage struct {
	ID        string    `gorm:"type:varchar(36);primary_key"`
	EventType string    `gorm:"type:varchar(100);index"`
	OrderID   string    `gorm:"type:varchar(32);index"`
	Payload   string    `gorm:"type:text"`
	Status    string    `gorm:"type:varchar(20);index;default:'pending'"`
	Attempts  int       `gorm:"default:0"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName 指定表名
func (OutboxMessage) TableName() string {
	return "order_outbox_messages"
}

// OutboxEventPublisher 实现 domain.EventPublisher，使用 Outbox 模式
type OutboxEventPublisher struct {
	db *gorm.DB
}

// NewOutboxEventPublisher 创建 OutboxEventPublisher 实例
func NewOutboxEventPublisher(gdb *gorm.DB) *OutboxEventPublisher {
	return &OutboxEventPublisher{db: gdb}
}

// PublishOrderPlaced 发布订单创建事件
func (p *OutboxEventPublisher) PublishOrderPlaced(ctx context.Context, event domain.OrderPlacedEvent) error {
	return p.publish(ctx, domain.EventTypeOrderPlaced, event.OrderID, event)
}

// PublishOrderStatusChanged 发布订单状态变更事件
func (p *OutboxEventPublisher) PublishOrderStatusChanged(ctx context.Context, event domain.OrderStatusChangedEvent) error {
	return p.publish(ctx, domain.EventTypeOrderStatusChanged, event.OrderID, event)
}

func (p *OutboxEventPublisher) publish(ctx context.Context, eventType, orderID string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := OutboxMessage{
		ID:        uuid.New().String(),
		EventType: eventType,
		OrderID:   orderID,
		Payload:   string(payload),
		Status:    OutboxStatusPending,
	}

	return db.HandleFromContext(ctx, p.db).WithContext(ctx).Create(&msg).Error
}
