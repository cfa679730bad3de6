package domain

import (
	"context"
	"errors"
)

// ErrCartNotFound 购物车不存在
var ErrCartNotFound = errors.New("cart not found")

// CartRepository 购物车主存储接口
type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, userID string) error
}

// CartMirror 购物车会话镜像（次级存储）
// 主存储不可用或尚未落库时兜底，保证页面刷新后购物车不丢
type CartMirror interface {
	Load(ctx context.Context, userID string) (*Cart, error)
	Store(ctx context.Context, cart *Cart) error
	Drop(ctx context.Context, userID string) error
}
