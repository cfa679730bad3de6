package domain

import "context"

// ProductFilter 商品列表的查询条件
type ProductFilter struct {
	CategoryID uint
	Keyword    string
	Featured   *bool
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ProductRepository 商品仓储
type ProductRepository interface {
	// List 按条件分页查询
	List(ctx context.Context, filter ProductFilter) ([]*Product, int64, error)
	// Get 按业务 ID 查询，不存在返回 ErrProductNotFound
	Get(ctx context.Context, productID string) (*Product, error)
	// Save 新增商品
	Save(ctx context.Context, product *Product) error
	// Update 更新商品
	Update(ctx context.Context, product *Product) error
	// Delete 删除商品
	Delete(ctx context.Context, productID string) error
	// DecrementStock 原子扣减库存，库存不足返回 ErrInsufficientStock
	DecrementStock(ctx context.Context, productID string, quantity int) error
}

// CategoryRepository 分类仓储
type CategoryRepository interface {
	List(ctx context.Context) ([]*Category, error)
	Get(ctx context.Context, id uint) (*Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uint) error
}
