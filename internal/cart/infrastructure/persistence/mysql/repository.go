package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wyfcoding/ecommerce/internal/cart/domain"
)

type cartRepository struct{ db *gorm.DB }

// NewCartRepository 创建基于 MySQL 的购物车仓储
func NewCartRepository(db *gorm.DB) domain.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(cart).Error; err != nil {
			return err
		}
		// 删除内存中已移除但仍在库里的行
		keep := make([]uint, 0, len(cart.Items))
		for _, item := range cart.Items {
			if item.ID != 0 {
				keep = append(keep, item.ID)
			}
		}
		q := tx.Where("cart_id = ?", cart.ID)
		if len(keep) > 0 {
			q = q.Where("id NOT IN ?", keep)
		}
		return q.Delete(&domain.CartItem{}).Error
	})
}

func (r *cartRepository) Delete(ctx context.Context, userID string) error {
	var cart domain.Cart
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrCartNotFound
	}
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&domain.CartItem{}, "cart_id = ?", cart.ID).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&cart).Error
}
