// Package application 商品目录应用服务
package application

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/ecommerce/internal/catalog/domain"
	"github.com/wyfcoding/ecommerce/pkg/cache"
	"github.com/wyfcoding/ecommerce/pkg/idgen"
	"github.com/wyfcoding/ecommerce/pkg/logger"
)

const (
	productCacheTTL  = 5 * time.Minute
	categoryCacheKey = "catalog:categories"
)

// CatalogService 商品目录应用服务
// 读路径带 Redis 缓存，写路径直达 MySQL 并使缓存失效
type CatalogService struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
	cache      *cache.RedisCache
	ids        *idgen.Snowflake
}

// NewCatalogService 创建商品目录应用服务
func NewCatalogService(products domain.ProductRepository, categories domain.CategoryRepository, c *cache.RedisCache, ids *idgen.Snowflake) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		cache:      c,
		ids:        ids,
	}
}

func productCacheKey(productID string) string {
	return fmt.Sprintf("catalog:product:%s", productID)
}

// ListProducts 按条件分页查询商品
func (s *CatalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.products.List(ctx, filter)
}

// GetProduct 查询单个商品，优先读缓存
func (s *CatalogService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	if s.cache != nil {
		var cached domain.Product
		if err := s.cache.GetJSON(ctx, productCacheKey(productID), &cached); err == nil {
			return &cached, nil
		}
	}

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, productCacheKey(productID), product, productCacheTTL); err != nil {
			logger.Warn(ctx, "Failed to cache product", "product_id", productID, "error", err)
		}
	}
	return product, nil
}

// CreateProductCommand 新增商品命令
type CreateProductCommand struct {
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  uint
	Stock       int
	ImageURL    string
	Colors      []string
	Sizes       []string
	Featured    bool
}

// CreateProduct 新增商品
func (s *CatalogService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.CategoryID != 0 {
		if _, err := s.categories.Get(ctx, cmd.CategoryID); err != nil {
			return nil, err
		}
	}

	product := &domain.Product{
		ProductID:   s.ids.GenerateString("PRD"),
		Name:        cmd.Name,
		Description: cmd.Description,
		Price:       cmd.Price,
		CategoryID:  cmd.CategoryID,
		Stock:       cmd.Stock,
		ImageURL:    cmd.ImageURL,
		Colors:      cmd.Colors,
		Sizes:       cmd.Sizes,
		Featured:    cmd.Featured,
		Active:      true,
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Product created", "product_id", product.ProductID, "name", product.Name)
	return product, nil
}

// UpdateProduct 更新商品并使缓存失效
func (s *CatalogService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if err := s.products.Update(ctx, product); err != nil {
		return err
	}
	s.invalidate(ctx, product.ProductID)
	return nil
}

// DeleteProduct 删除商品并使缓存失效
func (s *CatalogService) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.products.Delete(ctx, productID); err != nil {
		return err
	}
	s.invalidate(ctx, productID)
	return nil
}

// DecrementStock 扣减库存，由订单事件消费者调用
func (s *CatalogService) DecrementStock(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	if err := s.products.DecrementStock(ctx, productID, quantity); err != nil {
		return err
	}
	s.invalidate(ctx, productID)
	return nil
}

// ListCategories 查询全部分类，优先读缓存
func (s *CatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	if s.cache != nil {
		var cached []*domain.Category
		if err := s.cache.GetJSON(ctx, categoryCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, categoryCacheKey, categories, productCacheTTL); err != nil {
			logger.Warn(ctx, "Failed to cache categories", "error", err)
		}
	}
	return categories, nil
}

// CreateCategory 新增分类
func (s *CatalogService) CreateCategory(ctx context.Context, category *domain.Category) error {
	if err := s.categories.Save(ctx, category); err != nil {
		return err
	}
	s.dropCategoryCache(ctx)
	return nil
}

// DeleteCategory 删除分类
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.dropCategoryCache(ctx)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, productID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, productCacheKey(productID)); err != nil {
		logger.Warn(ctx, "Failed to invalidate product cache", "product_id", productID, "error", err)
	}
}

func (s *CatalogService) dropCategoryCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, categoryCacheKey); err != nil {
		logger.Warn(ctx, "Failed to invalidate category cache", "error", err)
	}
}
