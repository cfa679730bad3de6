package domain

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(price string, qty int) Line {
	return Line{UnitPrice: decimal.RequireFromString(price), Quantity: qty}
}

func TestCalculateEmptyCart(t *testing.T) {
	b := Calculate(nil)

	assert.True(t, b.Subtotal.IsZero())
	assert.True(t, b.Tax.IsZero())
	assert.True(t, b.Shipping.IsZero())
	assert.True(t, b.Total.IsZero())
}

func TestCalculateSubtotalAtThreshold(t *testing.T) {
	// 小计恰好 1000：门槛为严格大于，仍收运费
	b := Calculate([]Line{line("500", 2)})

	assert.Equal(t, "1000", b.Subtotal.String())
	assert.Equal(t, "180", b.Tax.String())
	assert.Equal(t, "99", b.Shipping.String())
	assert.Equal(t, "1279", b.Total.String())
}

func TestCalculateAboveThreshold(t *testing.T) {
	b := Calculate([]Line{line("600", 2)})

	assert.Equal(t, "1200", b.Subtotal.String())
	assert.Equal(t, "216", b.Tax.String())
	assert.Equal(t, "0", b.Shipping.String())
	assert.Equal(t, "1416", b.Total.String())
}

func TestCalculateBelowThreshold(t *testing.T) {
	b := Calculate([]Line{line("100.50", 3)})

	assert.Equal(t, "301.5", b.Subtotal.String())
	assert.Equal(t, "54.27", b.Tax.String())
	assert.Equal(t, "99", b.Shipping.String())
	assert.Equal(t, "454.77", b.Total.String())
}

func TestShippingFee(t *testing.T) {
	cases := []struct {
		subtotal string
		want     string
	}{
		{"0", "0"},
		{"0.01", "99"},
		{"999.99", "99"},
		{"1000", "99"},
		{"1000.01", "0"},
		{"5000", "0"},
	}

	for _, tc := range cases {
		got := ShippingFee(decimal.RequireFromString(tc.subtotal))
		assert.Equal(t, tc.want, got.String(), "subtotal=%s", tc.subtotal)
	}
}

func TestCalculateTaxExactness(t *testing.T) {
	// 税额必须是小计的精确 18%，不允许中间舍入
	b := Calculate([]Line{line("33.33", 1)})

	want := decimal.RequireFromString("33.33").Mul(decimal.RequireFromString("0.18"))
	require.True(t, b.Tax.Equal(want), "tax %s != %s", b.Tax, want)
}

func TestCalculateTotalIdentityRandomCarts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		n := rng.Intn(8)
		lines := make([]Line, 0, n)
		subtotal := decimal.Zero
		for j := 0; j < n; j++ {
			// 价格两位小数，数量 1..9
			price := decimal.New(int64(rng.Intn(500000)+1), -2)
			qty := rng.Intn(9) + 1
			lines = append(lines, Line{UnitPrice: price, Quantity: qty})
			subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(qty))))
		}

		b := Calculate(lines)

		require.True(t, b.Subtotal.Equal(subtotal), "subtotal mismatch: %s != %s", b.Subtotal, subtotal)
		require.True(t, b.Total.Equal(b.Subtotal.Add(b.Tax).Add(b.Shipping)),
			"total identity broken: %s", b.Total)
		require.True(t, b.Tax.Equal(b.Subtotal.Mul(TaxRate)))
	}
}
