// Package redis 内容区块的 Redis 仓储
// 每类区块整体存一个 JSON 列表，读写都以类型为单位
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/wyfcoding/ecommerce/internal/content/domain"
	"github.com/wyfcoding/ecommerce/pkg/cache"
)

type blockRepository struct{ cache *cache.RedisCache }

// NewBlockRepository 创建基于 Redis 的区块仓储
func NewBlockRepository(c *cache.RedisCache) domain.BlockRepository {
	return &blockRepository{cache: c}
}

func key(blockType domain.BlockType) string {
	return fmt.Sprintf("content:blocks:%s", blockType)
}

func (r *blockRepository) load(ctx context.Context, blockType domain.BlockType) ([]*domain.Block, error) {
	var blocks []*domain.Block
	err := r.cache.GetJSON(ctx, key(blockType), &blocks)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *blockRepository) store(ctx context.Context, blockType domain.BlockType, blocks []*domain.Block) error {
	// 区块是管理员维护的持久数据，不设过期
	return r.cache.SetJSON(ctx, key(blockType), blocks, 0)
}

func (r *blockRepository) ListByType(ctx context.Context, blockType domain.BlockType) ([]*domain.Block, error) {
	blocks, err := r.load(ctx, blockType)
	if err != nil {
		return nil, err
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Position < blocks[j].Position })
	return blocks, nil
}

func (r *blockRepository) Get(ctx context.Context, blockType domain.BlockType, id string) (*domain.Block, error) {
	blocks, err := r.load(ctx, blockType)
	if err != nil {
		return nil, err
	}
	for _, b := range blocks {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, domain.ErrBlockNotFound
}

func (r *blockRepository) Save(ctx context.Context, block *domain.Block) error {
	blocks, err := r.load(ctx, block.Type)
	if err != nil {
		return err
	}

	replaced := false
	for i, b := range blocks {
		if b.ID == block.ID {
			blocks[i] = block
			replaced = true
			break
		}
	}
	if !replaced {
		blocks = append(blocks, block)
	}

	return r.store(ctx, block.Type, blocks)
}

func (r *blockRepository) Delete(ctx context.Context, blockType domain.BlockType, id string) error {
	blocks, err := r.load(ctx, blockType)
	if err != nil {
		return err
	}

	kept := make([]*domain.Block, 0, len(blocks))
	for _, b := range blocks {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(blocks) {
		return domain.ErrBlockNotFound
	}

	return r.store(ctx, blockType, kept)
}

func (r *blockRepository) SaveAll(ctx context.Context, blockType domain.BlockType, blocks []*domain.Block) error {
	return r.store(ctx, blockType, blocks)
}
