// Package domain 商品目录的领域模型
package domain

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Product 商品
type Product struct {
	gorm.Model
	ProductID   string          `gorm:"column:product_id;type:varchar(32);uniqueIndex;not null" json:"product_id"`
	Name        string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(20,4);not null" json:"price"`
	CategoryID  uint            `gorm:"column:category_id;index" json:"category_id"`
	Stock       int             `gorm:"column:stock;not null;default:0" json:"stock"`
	ImageURL    string          `gorm:"column:image_url;type:varchar(512)" json:"image_url"`
	Colors      []string        `gorm:"column:colors;type:varchar(512);serializer:json" json:"colors"`
	Sizes       []string        `gorm:"column:sizes;type:varchar(512);serializer:json" json:"sizes"`
	Featured    bool            `gorm:"column:featured;default:false" json:"featured"`
	Active      bool            `gorm:"column:active;default:true" json:"active"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// InStock 是否有足够库存
func (p *Product) InStock(quantity int) bool {
	return p.Stock >= quantity
}

// Category 商品分类
type Category struct {
	gorm.Model
	Name     string `gorm:"column:name;type:varchar(100);uniqueIndex;not null" json:"name"`
	Slug     string `gorm:"column:slug;type:varchar(100);uniqueIndex;not null" json:"slug"`
	ImageURL string `gorm:"column:image_url;type:varchar(512)" json:"image_url"`
	Position int    `gorm:"column:position;default:0" json:"position"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
