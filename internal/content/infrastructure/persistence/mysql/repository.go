// Package mysql 内容区块的 MySQL 仓储
package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wyfcoding/ecommerce/internal/content/domain"
)

type blockRepository struct{ db *gorm.DB }

// NewBlockRepository 创建基于 MySQL 的区块仓储
func NewBlockRepository(gdb *gorm.DB) domain.BlockRepository {
	return &blockRepository{db: gdb}
}

func (r *blockRepository) ListByType(ctx context.Context, blockType domain.BlockType) ([]*domain.Block, error) {
	var blocks []*domain.Block
	err := r.db.WithContext(ctx).
		Where("type = ?", blockType).
		Order("position ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *blockRepository) Get(ctx context.Context, blockType domain.BlockType, id string) (*domain.Block, error) {
	var block domain.Block
	err := r.db.WithContext(ctx).Where("type = ? AND id = ?", blockType, id).First(&block).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrBlockNotFound
	}
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *blockRepository) Save(ctx context.Context, block *domain.Block) error {
	return r.db.WithContext(ctx).Save(block).Error
}

func (r *blockRepository) Delete(ctx context.Context, blockType domain.BlockType, id string) error {
	result := r.db.WithContext(ctx).Where("type = ? AND id = ?", blockType, id).Delete(&domain.Block{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrBlockNotFound
	}
	return nil
}

// SaveAll 单事务写回整类区块的新位置
func (r *blockRepository) SaveAll(ctx context.Context, blockType domain.BlockType, blocks []*domain.Block) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, block := range blocks {
			err := tx.Model(&domain.Block{}).
				Where("type = ? AND id = ?", blockType, block.ID).
				Update("position", block.Position).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
