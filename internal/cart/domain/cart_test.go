package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newItem(productID, color, size string, price string, qty int) CartItem {
	return CartItem{
		ProductID: productID,
		Name:      "item-" + productID,
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
		Color:     color,
		Size:      size,
	}
}

func TestAddItemMergesSameVariant(t *testing.T) {
	cart := &Cart{UserID: "u1"}

	cart.AddItem(newItem("p1", "red", "M", "500", 2))
	cart.AddItem(newItem("p1", "red", "M", "500", 3))

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddItemDistinctVariantsStaySeparate(t *testing.T) {
	cart := &Cart{UserID: "u1"}

	cart.AddItem(newItem("p1", "red", "M", "500", 1))
	cart.AddItem(newItem("p1", "blue", "M", "500", 1))
	cart.AddItem(newItem("p1", "red", "L", "500", 1))

	assert.Len(t, cart.Items, 3)
}

func TestAddItemNonPositiveQuantityTreatedAsOne(t *testing.T) {
	cart := &Cart{UserID: "u1"}

	cart.AddItem(newItem("p1", "", "", "100", 0))
	cart.AddItem(newItem("p2", "", "", "100", -4))

	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, 1, cart.Items[1].Quantity)
}

func TestUpdateQuantityBelowOneIsNoOp(t *testing.T) {
	cart := &Cart{UserID: "u1"}
	cart.AddItem(newItem("p1", "", "", "100", 3))

	changed := cart.UpdateQuantity("p1", "", "", 0)

	assert.False(t, changed)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Len(t, cart.Items, 1)
}

func TestUpdateQuantityReplacesValue(t *testing.T) {
	cart := &Cart{UserID: "u1"}
	cart.AddItem(newItem("p1", "", "", "100", 3))

	changed := cart.UpdateQuantity("p1", "", "", 7)

	assert.True(t, changed)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestUpdateQuantityMissingLine(t *testing.T) {
	cart := &Cart{UserID: "u1"}

	assert.False(t, cart.UpdateQuantity("missing", "", "", 2))
}

func TestRemoveItem(t *testing.T) {
	cart := &Cart{UserID: "u1"}
	cart.AddItem(newItem("p1", "", "", "100", 1))
	cart.AddItem(newItem("p2", "", "", "200", 1))

	cart.RemoveItem("p1", "", "")

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)

	// 不存在的行删除是 no-op
	cart.RemoveItem("p9", "", "")
	assert.Len(t, cart.Items, 1)
}

func TestClear(t *testing.T) {
	cart := &Cart{UserID: "u1"}
	cart.AddItem(newItem("p1", "", "", "100", 1))

	cart.Clear()

	assert.True(t, cart.IsEmpty())
}

func TestSubtotal(t *testing.T) {
	cart := &Cart{UserID: "u1"}
	cart.AddItem(newItem("p1", "", "", "199.99", 2))
	cart.AddItem(newItem("p2", "", "", "50", 3))

	assert.Equal(t, "549.98", cart.Subtotal().String())
}

func TestPricingLines(t *testing.T) {
	cart := &Cart{UserID: "u1"}
	cart.AddItem(newItem("p1", "", "", "10", 2))

	lines := cart.PricingLines()

	assert.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "10", lines[0].UnitPrice.String())
}
