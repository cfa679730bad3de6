// Package domain 包含购物车服务的领域模型
package domain

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pricing "github.com/wyfcoding/ecommerce/internal/pricing/domain"
)

// Cart 购物车，每个用户唯一
type Cart struct {
	gorm.Model
	UserID string     `gorm:"column:user_id;type:varchar(36);uniqueIndex;not null" json:"user_id"`
	Items  []CartItem `gorm:"foreignKey:CartID" json:"items"`
}

func (Cart) TableName() string { return "carts" }

// CartItem 购物车行项目
// 同一 (product_id, color, size) 组合最多一行，重复加购合并数量
type CartItem struct {
	gorm.Model
	CartID    uint            `gorm:"column:cart_id;index;not null" json:"-"`
	ProductID string          `gorm:"column:product_id;type:varchar(36);not null" json:"product_id"`
	Name      string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:decimal(20,8);not null" json:"unit_price"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	Color     string          `gorm:"column:color;type:varchar(50)" json:"color,omitempty"`
	Size      string          `gorm:"column:size;type:varchar(50)" json:"size,omitempty"`
	ImageURL  string          `gorm:"column:image_url;type:varchar(512)" json:"image_url,omitempty"`
}

func (CartItem) TableName() string { return "cart_items" }

// matches 判断是否为同一 (商品, 变体) 行
func (i *CartItem) matches(productID, color, size string) bool {
	return i.ProductID == productID && i.Color == color && i.Size == size
}

// AddItem 加购；已存在相同商品+变体时合并数量
// 数量非正时按 1 处理
func (c *Cart) AddItem(item CartItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for idx := range c.Items {
		if c.Items[idx].matches(item.ProductID, item.Color, item.Size) {
			c.Items[idx].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// UpdateQuantity 修改行数量
// 数量小于 1 时不生效（删除必须走 RemoveItem）；返回是否有行被修改
func (c *Cart) UpdateQuantity(productID, color, size string, quantity int) bool {
	if quantity < 1 {
		return false
	}
	for idx := range c.Items {
		if c.Items[idx].matches(productID, color, size) {
			c.Items[idx].Quantity = quantity
			return true
		}
	}
	return false
}

// RemoveItem 删除行；不存在时为 no-op
func (c *Cart) RemoveItem(productID, color, size string) {
	for idx := range c.Items {
		if c.Items[idx].matches(productID, color, size) {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			return
		}
	}
}

// Clear 清空购物车
func (c *Cart) Clear() {
	c.Items = nil
}

// IsEmpty 是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal 行项目小计之和
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

// PricingLines 转换为计价引擎的行项目
func (c *Cart) PricingLines() []pricing.Line {
	lines := make([]pricing.Line, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}
	return lines
}
