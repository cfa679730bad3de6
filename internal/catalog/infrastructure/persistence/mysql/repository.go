// Package mysql 商品目录的 MySQL 仓储
package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wyfcoding/ecommerce/internal/catalog/domain"
)

type productRepository struct{ db *gorm.DB }

// NewProductRepository 创建基于 MySQL 的商品仓储
func NewProductRepository(gdb *gorm.DB) domain.ProductRepository {
	return &productRepository{db: gdb}
}

func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Product{})

	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []*domain.Product
	err := query.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) Get(ctx context.Context, productID string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	result := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("product_id = ?", product.ProductID).
		Select("name", "description", "price", "category_id", "stock", "image_url", "colors", "sizes", "featured", "active").
		Updates(product)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, productID string) error {
	result := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&domain.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// DecrementStock 条件更新保证不会扣成负数
func (r *productRepository) DecrementStock(ctx context.Context, productID string, quantity int) error {
	result := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("product_id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrProductNotFound
		}
		return domain.ErrInsufficientStock
	}
	return nil
}

type categoryRepository struct{ db *gorm.DB }

// NewCategoryRepository 创建基于 MySQL 的分类仓储
func NewCategoryRepository(gdb *gorm.DB) domain.CategoryRepository {
	return &categoryRepository{db: gdb}
}

func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category
	err := r.db.WithContext(ctx).Order("position ASC, id ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Get(ctx context.Context, id uint) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Save(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}
