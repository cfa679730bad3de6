package application

import (
	"context"

	"github.com/wyfcoding/ecommerce/internal/order/domain"
)

// OrderQueryService 处理所有订单相关的查询操作
type OrderQueryService struct {
	repo     domain.OrderRepository
	readRepo domain.OrderReadRepository
}

// NewOrderQueryService 构造函数
func NewOrderQueryService(repo domain.OrderRepository, readRepo domain.OrderReadRepository) *OrderQueryService {
	return &OrderQueryService{
		repo:     repo,
		readRepo: readRepo,
	}
}

// GetOrder 按订单 ID 查询，优先读缓存
func (s *OrderQueryService) GetOrder(ctx context.Context, orderID string) (*OrderDTO, error) {
	if s.readRepo != nil {
		if cached, err := s.readRepo.Get(ctx, orderID); err == nil && cached != nil {
			return toOrderDTO(cached), nil
		}
	}

	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if s.readRepo != nil {
		_ = s.readRepo.Save(ctx, order)
	}
	return toOrderDTO(order), nil
}

// ListOrders 查询用户订单列表
func (s *OrderQueryService) ListOrders(ctx context.Context, userID string, status domain.OrderStatus, limit, offset int) ([]*OrderDTO, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	orders, total, err := s.repo.ListByUser(ctx, userID, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return toOrderDTOs(orders), total, nil
}
