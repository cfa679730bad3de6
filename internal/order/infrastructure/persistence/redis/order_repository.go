// Package redis 订单读缓存
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/ecommerce/internal/order/domain"
	"github.com/wyfcoding/ecommerce/pkg/cache"
)

const orderCacheTTL = 10 * time.Minute

type orderReadRepository struct{ cache *cache.RedisCache }

// NewOrderReadRepository 创建基于 Redis 的订单读缓存
func NewOrderReadRepository(c *cache.RedisCache) domain.OrderReadRepository {
	return &orderReadRepository{cache: c}
}

func key(orderID string) string {
	return fmt.Sprintf("order:%s", orderID)
}

func (r *orderReadRepository) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	ok, err := r.cache.Exists(ctx, key(orderID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var order domain.Order
	if err := r.cache.GetJSON(ctx, key(orderID), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderReadRepository) Save(ctx context.Context, order *domain.Order) error {
	return r.cache.SetJSON(ctx, key(order.OrderID), order, orderCacheTTL)
}

func (r *orderReadRepository) Invalidate(ctx context.Context, orderID string) error {
	return r.cache.Delete(ctx, key(orderID))
}
