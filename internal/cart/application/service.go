// Package application 购物车应用服务
package application

import (
	"context"
	"errors"

	"github.com/wyfcoding/ecommerce/internal/cart/domain"
	pricing "github.com/wyfcoding/ecommerce/internal/pricing/domain"
	"github.com/wyfcoding/ecommerce/pkg/logger"
	"github.com/wyfcoding/ecommerce/pkg/metrics"
)

// CartApplicationService 购物车应用服务
// 主存储为 MySQL；每次写入同步镜像到 Redis，读取在主存储故障时回落镜像
type CartApplicationService struct {
	repo    domain.CartRepository
	mirror  domain.CartMirror
	metrics *metrics.Metrics
}

// NewCartApplicationService 创建购物车应用服务
func NewCartApplicationService(repo domain.CartRepository, mirror domain.CartMirror, m *metrics.Metrics) *CartApplicationService {
	return &CartApplicationService{repo: repo, mirror: mirror, metrics: m}
}

// GetCart 获取用户购物车；不存在时返回空购物车
func (s *CartApplicationService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if errors.Is(err, domain.ErrCartNotFound) {
		return &domain.Cart{UserID: userID}, nil
	}

	// 主存储故障时回落会话镜像
	logger.Warn(ctx, "Cart repository unavailable, falling back to mirror", "user_id", userID, "error", err)
	if s.mirror != nil {
		if mirrored, mErr := s.mirror.Load(ctx, userID); mErr == nil && mirrored != nil {
			return mirrored, nil
		}
	}
	return nil, err
}

// Quote 计算当前购物车的价格明细
func (s *CartApplicationService) Quote(ctx context.Context, userID string) (*domain.Cart, pricing.Breakdown, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, pricing.Breakdown{}, err
	}
	return cart, pricing.Calculate(cart.PricingLines()), nil
}

// AddItem 加购
func (s *CartApplicationService) AddItem(ctx context.Context, userID string, item domain.CartItem) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.AddItem(item)
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.CartItemsAdded.Inc()
	}
	return cart, nil
}

// UpdateQuantity 修改行数量；数量小于 1 时保持原数量不变
func (s *CartApplicationService) UpdateQuantity(ctx context.Context, userID, productID, color, size string, quantity int) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !cart.UpdateQuantity(productID, color, size, quantity) {
		// 无效数量或行不存在均不落库
		return cart, nil
	}
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem 删除行
func (s *CartApplicationService) RemoveItem(ctx context.Context, userID, productID, color, size string) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(productID, color, size)
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearCart 清空购物车
func (s *CartApplicationService) ClearCart(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil && !errors.Is(err, domain.ErrCartNotFound) {
		return err
	}
	if s.mirror != nil {
		if err := s.mirror.Drop(ctx, userID); err != nil {
			logger.Warn(ctx, "Failed to drop cart mirror", "user_id", userID, "error", err)
		}
	}
	return nil
}

// save 主存储写入并同步镜像
func (s *CartApplicationService) save(ctx context.Context, cart *domain.Cart) error {
	if err := s.repo.Save(ctx, cart); err != nil {
		return err
	}
	if s.mirror != nil {
		if err := s.mirror.Store(ctx, cart); err != nil {
			// 镜像只是兜底，写失败不阻断主流程
			logger.Warn(ctx, "Failed to store cart mirror", "user_id", cart.UserID, "error", err)
		}
	}
	return nil
}
