package messaging

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/wyfcoding/ecommerce/internal/order/domain"
	"github.com/wyfcoding/ecommerce/pkg/logger"
	"github.com/wyfcoding/ecommerce/pkg/mq"
)

const (
	relayBatchSize   = 100
	relayMaxAttempts = 5
)

// OutboxRelay 轮询 outbox 表并把待发消息投递到 Kafka
type OutboxRelay struct {
	db       *gorm.DB
	producer *mq.KafkaProducer
	topic    string
	interval time.Duration
}

// NewOutboxRelay 创建 outbox 中继
func NewOutboxRelay(gdb *gorm.DB, producer *mq.KafkaProducer, topic string, interval time.Duration) *OutboxRelay {
	if interval <= 0 {
		interval = time.Second
	}
	return &OutboxRelay{
		db:       gdb,
		producer: producer,
		topic:    topic,
		interval: interval,
	}
}

// Run 启动轮询循环，直到 context 取消
func (r *OutboxRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	logger.Info(ctx, "Outbox relay started", "topic", r.topic, "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Outbox relay stopped")
			return
		case <-ticker.C:
			if err := r.relayBatch(ctx); err != nil {
				logger.Error(ctx, "Outbox relay batch failed", "error", err)
			}
		}
	}
}

// relayBatch 投递一批待发消息
// 投递成功后标记 sent；超过最大尝试次数的消息标记 failed，等待人工处理
func (r *OutboxRelay) relayBatch(ctx context.Context) error {
	var messages []OutboxMessage
	err := r.db.WithContext(ctx).
		Where("status = ?", OutboxStatusPending).
		Order("created_at ASC").
		Limit(relayBatchSize).
		Find(&messages).Error
	if err != nil {
		return err
	}

	for i := range messages {
		msg := &messages[i]

		envelope, marshalErr := json.Marshal(domain.EventEnvelope{
			EventType: msg.EventType,
			Payload:   json.RawMessage(msg.Payload),
		})
		if marshalErr != nil {
			logger.Error(ctx, "Failed to build event envelope", "message_id", msg.ID, "error", marshalErr)
			continue
		}

		sendErr := r.producer.SendRaw(ctx, r.topic, msg.OrderID, envelope)
		if sendErr != nil {
			msg.Attempts++
			status := OutboxStatusPending
			if msg.Attempts >= relayMaxAttempts {
				status = OutboxStatusFailed
				logger.Error(ctx, "Outbox message exhausted retries",
					"message_id", msg.ID,
					"event_type", msg.EventType,
					"error", sendErr,
				)
			}
			if err := r.db.WithContext(ctx).Model(msg).
				Updates(map[string]interface{}{"attempts": msg.Attempts, "status": status}).Error; err != nil {
				logger.Error(ctx, "Failed to update outbox message", "message_id", msg.ID, "error", err)
			}
			continue
		}

		if err := r.db.WithContext(ctx).Model(msg).
			Update("status", OutboxStatusSent).Error; err != nil {
			// 标记失败会导致重复投递，消费方按消息幂等处理
			logger.Error(ctx, "Failed to mark outbox message sent", "message_id", msg.ID, "error", err)
		}
	}

	return nil
}
