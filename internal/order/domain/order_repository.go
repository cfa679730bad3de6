package domain

import "context"

// OrderRepository 订单仓储接口
type OrderRepository interface {
	// 保存订单（含行项目快照）
	Save(ctx context.Context, order *Order) error
	// 按订单 ID 获取
	Get(ctx context.Context, orderID string) (*Order, error)
	// 按客户端订单 ID 获取（幂等检查）
	GetByClientOrderID(ctx context.Context, clientOrderID string) (*Order, error)
	// 获取用户订单列表
	ListByUser(ctx context.Context, userID string, status OrderStatus, limit, offset int) ([]*Order, int64, error)
	// 更新订单状态；expectedVersion 不匹配时返回 ErrVersionConflict
	UpdateStatus(ctx context.Context, orderID string, status OrderStatus, expectedVersion int64) error
}

// OrderReadRepository 订单读缓存接口
type OrderReadRepository interface {
	Get(ctx context.Context, orderID string) (*Order, error)
	Save(ctx context.Context, order *Order) error
	Invalidate(ctx context.Context, orderID string) error
}
