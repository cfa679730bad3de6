// Package domain 包含定价引擎的领域模型
// 购物车结算与订单创建共用同一份价格规则，任何调用方不得自行复制计算逻辑
package domain

import "github.com/shopspring/decimal"

// 价格业务规则
var (
	// TaxRate 税率（18% GST）
	TaxRate = decimal.RequireFromString("0.18")
	// FreeShippingThreshold 免运费门槛；小计严格大于该值时免运费
	FreeShippingThreshold = decimal.NewFromInt(1000)
	// FlatShippingFee 固定运费
	FlatShippingFee = decimal.NewFromInt(99)
)

// Line 参与计价的单行（单价 × 数量）
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Breakdown 价格明细
// 派生值，不落库；Total == Subtotal + Tax + Shipping 恒成立
type Breakdown struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Calculate 根据行项目计算价格明细
// 中间值不做舍入，格式化是展示层的事
func Calculate(lines []Line) Breakdown {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	tax := subtotal.Mul(TaxRate)
	shipping := ShippingFee(subtotal)

	return Breakdown{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping),
	}
}

// ShippingFee 计算运费
// 空购物车（小计为 0）不收运费；门槛为严格大于，小计恰好等于门槛时仍收固定运费
func ShippingFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsZero() {
		return decimal.Zero
	}
	if subtotal.GreaterThan(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FlatShippingFee
}
