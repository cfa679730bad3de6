// Package redis 购物车会话镜像
// 对应前端时代的 localStorage 兜底：按固定 key 存 JSON 序列化的购物车
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/ecommerce/internal/cart/domain"
	"github.com/wyfcoding/ecommerce/pkg/cache"
)

// 镜像保留 7 天，和会话生命周期一致
const mirrorTTL = 7 * 24 * time.Hour

type cartMirror struct{ cache *cache.RedisCache }

// NewCartMirror 创建基于 Redis 的购物车镜像
func NewCartMirror(c *cache.RedisCache) domain.CartMirror {
	return &cartMirror{cache: c}
}

func key(userID string) string {
	return fmt.Sprintf("cart:mirror:%s", userID)
}

func (m *cartMirror) Load(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	ok, err := m.cache.Exists(ctx, key(userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	if err := m.cache.GetJSON(ctx, key(userID), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (m *cartMirror) Store(ctx context.Context, cart *domain.Cart) error {
	return m.cache.SetJSON(ctx, key(cart.UserID), cart, mirrorTTL)
}

func (m *cartMirror) Drop(ctx context.Context, userID string) error {
	return m.cache.Delete(ctx, key(userID))
}
