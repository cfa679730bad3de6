// Package domain 店铺内容区块的领域模型
// 首页与营销位由十类内容区块拼装，后台对每类区块做增删改查与排序
package domain

import (
	"context"
	"errors"
	"time"
)

// BlockType 内容区块类型
type BlockType string

const (
	BlockTypeHeroSlide    BlockType = "hero_slide"
	BlockTypeBanner       BlockType = "banner"
	BlockTypeCategoryTile BlockType = "category_tile"
	BlockTypeTestimonial  BlockType = "testimonial"
	BlockTypeFeature      BlockType = "feature"
	BlockTypeOfferStrip   BlockType = "offer_strip"
	BlockTypeBrandLogo    BlockType = "brand_logo"
	BlockTypeFAQ          BlockType = "faq"
	BlockTypeGalleryImage BlockType = "gallery_image"
	BlockTypeAnnouncement BlockType = "announcement"
)

// BlockTypes 全部已知类型，后台面板按此渲染
var BlockTypes = []BlockType{
	BlockTypeHeroSlide,
	BlockTypeBanner,
	BlockTypeCategoryTile,
	BlockTypeTestimonial,
	BlockTypeFeature,
	BlockTypeOfferStrip,
	BlockTypeBrandLogo,
	BlockTypeFAQ,
	BlockTypeGalleryImage,
	BlockTypeAnnouncement,
}

// Valid 是否为已知类型
func (t BlockType) Valid() bool {
	for _, known := range BlockTypes {
		if t == known {
			return true
		}
	}
	return false
}

var (
	// ErrBlockNotFound 区块不存在
	ErrBlockNotFound = errors.New("content block not found")
	// ErrUnknownBlockType 无法识别的区块类型
	ErrUnknownBlockType = errors.New("unknown content block type")
)

// Block 内容区块
// 字段按十类区块的并集建模，各类型只使用自己关心的字段
type Block struct {
	ID        string    `gorm:"type:varchar(36);primary_key" json:"id"`
	Type      BlockType `gorm:"column:type;type:varchar(32);index;not null" json:"type"`
	Title     string    `gorm:"column:title;type:varchar(255)" json:"title"`
	Subtitle  string    `gorm:"column:subtitle;type:varchar(255)" json:"subtitle"`
	Body      string    `gorm:"column:body;type:text" json:"body"`
	ImageURL  string    `gorm:"column:image_url;type:varchar(512)" json:"image_url"`
	LinkURL   string    `gorm:"column:link_url;type:varchar(512)" json:"link_url"`
	Position  int       `gorm:"column:position;not null;default:0" json:"position"`
	Active    bool      `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Block) TableName() string {
	return "content_blocks"
}

// BlockRepository 区块仓储
// 同一接口有 MySQL 与 Redis 两个实现，由配置选择
type BlockRepository interface {
	// ListByType 按类型返回区块，按 position 升序
	ListByType(ctx context.Context, blockType BlockType) ([]*Block, error)
	// Get 按 ID 查询，不存在返回 ErrBlockNotFound
	Get(ctx context.Context, blockType BlockType, id string) (*Block, error)
	// Save 新增或更新区块
	Save(ctx context.Context, block *Block) error
	// Delete 删除区块
	Delete(ctx context.Context, blockType BlockType, id string) error
	// SaveAll 整体写回一类区块，用于排序落库
	SaveAll(ctx context.Context, blockType BlockType, blocks []*Block) error
}
