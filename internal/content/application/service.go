// Package application 店铺内容管理应用服务
package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/wyfcoding/ecommerce/internal/content/domain"
	"github.com/wyfcoding/ecommerce/pkg/logger"
)

// ErrReorderMismatch 排序列表与现有区块不一致
var ErrReorderMismatch = errors.New("reorder list must contain exactly the existing block ids")

// ContentService 店铺内容管理应用服务
type ContentService struct {
	repo domain.BlockRepository
}

// NewContentService 创建内容管理应用服务
func NewContentService(repo domain.BlockRepository) *ContentService {
	return &ContentService{repo: repo}
}

// ListBlocks 按类型返回区块；activeOnly 为 true 时过滤停用区块
func (s *ContentService) ListBlocks(ctx context.Context, blockType domain.BlockType, activeOnly bool) ([]*domain.Block, error) {
	if !blockType.Valid() {
		return nil, domain.ErrUnknownBlockType
	}

	blocks, err := s.repo.ListByType(ctx, blockType)
	if err != nil {
		return nil, err
	}
	if !activeOnly {
		return blocks, nil
	}

	visible := make([]*domain.Block, 0, len(blocks))
	for _, b := range blocks {
		if b.Active {
			visible = append(visible, b)
		}
	}
	return visible, nil
}

// BlockInput 区块写入字段
type BlockInput struct {
	Title    string
	Subtitle string
	Body     string
	ImageURL string
	LinkURL  string
}

// AddBlock 新增区块，追加到该类型末尾
func (s *ContentService) AddBlock(ctx context.Context, blockType domain.BlockType, input BlockInput) (*domain.Block, error) {
	if !blockType.Valid() {
		return nil, domain.ErrUnknownBlockType
	}

	existing, err := s.repo.ListByType(ctx, blockType)
	if err != nil {
		return nil, err
	}

	position := 0
	for _, b := range existing {
		if b.Position >= position {
			position = b.Position + 1
		}
	}

	block := &domain.Block{
		ID:       uuid.New().String(),
		Type:     blockType,
		Title:    input.Title,
		Subtitle: input.Subtitle,
		Body:     input.Body,
		ImageURL: input.ImageURL,
		LinkURL:  input.LinkURL,
		Position: position,
		Active:   true,
	}

	if err := s.repo.Save(ctx, block); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Content block added", "type", blockType, "id", block.ID)
	return block, nil
}

// UpdateBlock 更新区块内容，位置与启用状态不在此入口修改
func (s *ContentService) UpdateBlock(ctx context.Context, blockType domain.BlockType, id string, input BlockInput) (*domain.Block, error) {
	if !blockType.Valid() {
		return nil, domain.ErrUnknownBlockType
	}

	block, err := s.repo.Get(ctx, blockType, id)
	if err != nil {
		return nil, err
	}

	block.Title = input.Title
	block.Subtitle = input.Subtitle
	block.Body = input.Body
	block.ImageURL = input.ImageURL
	block.LinkURL = input.LinkURL

	if err := s.repo.Save(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}

// DeleteBlock 删除区块
func (s *ContentService) DeleteBlock(ctx context.Context, blockType domain.BlockType, id string) error {
	if !blockType.Valid() {
		return domain.ErrUnknownBlockType
	}
	if err := s.repo.Delete(ctx, blockType, id); err != nil {
		return err
	}
	logger.Info(ctx, "Content block deleted", "type", blockType, "id", id)
	return nil
}

// ReorderBlocks 按给定 ID 顺序重排一类区块
// 传入的 ID 集合必须与现有区块完全一致
func (s *ContentService) ReorderBlocks(ctx context.Context, blockType domain.BlockType, orderedIDs []string) ([]*domain.Block, error) {
	if !blockType.Valid() {
		return nil, domain.ErrUnknownBlockType
	}

	blocks, err := s.repo.ListByType(ctx, blockType)
	if err != nil {
		return nil, err
	}
	if len(orderedIDs) != len(blocks) {
		return nil, ErrReorderMismatch
	}

	byID := make(map[string]*domain.Block, len(blocks))
	for _, b := range blocks {
		byID[b.ID] = b
	}

	reordered := make([]*domain.Block, 0, len(orderedIDs))
	for position, id := range orderedIDs {
		block, ok := byID[id]
		if !ok {
			return nil, ErrReorderMismatch
		}
		block.Position = position
		reordered = append(reordered, block)
		delete(byID, id)
	}

	if err := s.repo.SaveAll(ctx, blockType, reordered); err != nil {
		return nil, err
	}
	return reordered, nil
}

// ToggleActive 切换区块启用状态
func (s *ContentService) ToggleActive(ctx context.Context, blockType domain.BlockType, id string) (*domain.Block, error) {
	if !blockType.Valid() {
		return nil, domain.ErrUnknownBlockType
	}

	block, err := s.repo.Get(ctx, blockType, id)
	if err != nil {
		return nil, err
	}

	block.Active = !block.Active
	if err := s.repo.Save(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}
