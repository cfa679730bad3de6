package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wyfcoding/ecommerce/internal/order/domain"
	"github.com/wyfcoding/ecommerce/pkg/db"
)

type orderRepository struct{ db *gorm.DB }

// NewOrderRepository 创建基于 MySQL 的订单仓储
func NewOrderRepository(gdb *gorm.DB) domain.OrderRepository {
	return &orderRepository{db: gdb}
}

// handle 优先使用 context 中的事务句柄
func (r *orderRepository) handle(ctx context.Context) *gorm.DB {
	return db.HandleFromContext(ctx, r.db).WithContext(ctx)
}

func (r *orderRepository) Save(ctx context.Context, order *domain.Order) error {
	return r.handle(ctx).Create(order).Error
}

func (r *orderRepository) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	err := r.handle(ctx).Preload("Items").Where("order_id = ?", orderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByClientOrderID(ctx context.Context, clientOrderID string) (*domain.Order, error) {
	var order domain.Order
	err := r.handle(ctx).Preload("Items").Where("client_order_id = ?", clientOrderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string, status domain.OrderStatus, limit, offset int) ([]*domain.Order, int64, error) {
	query := r.handle(ctx).Model(&domain.Order{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []*domain.Order
	err := query.Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus 带乐观锁的状态更新
// version 不匹配时零行命中，映射为 ErrVersionConflict
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, expectedVersion int64) error {
	result := r.handle(ctx).Model(&domain.Order{}).
		Where("order_id = ? AND version = ?", orderID, expectedVersion).
		Updates(map[string]interface{}{
			"status":  status,
			"version": expectedVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.handle(ctx).Model(&domain.Order{}).Where("order_id = ?", orderID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrOrderNotFound
		}
		return domain.ErrVersionConflict
	}
	return nil
}
