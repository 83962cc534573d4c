package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSubtotal(t *testing.T) {
	items := []OrderItem{
		{ProductID: "p1", UnitPrice: dec("50.00"), Quantity: 2},
		{ProductID: "p2", UnitPrice: dec("30.00"), Quantity: 3},
	}

	subtotal, err := Subtotal(items)
	require.NoError(t, err)
	assert.True(t, dec("190.00").Equal(subtotal), "got %s", subtotal)
}

func TestSubtotal_EmptyItemsIsZero(t *testing.T) {
	subtotal, err := Subtotal(nil)
	require.NoError(t, err)
	assert.True(t, subtotal.IsZero())
}

func TestSubtotal_NonPositiveQuantity(t *testing.T) {
	for _, qty := range []int{0, -1} {
		_, err := Subtotal([]OrderItem{{ProductID: "p1", UnitPrice: dec("10.00"), Quantity: qty}})

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "Item quantity must be positive", ve.Message)
	}
}

func TestSubtotal_NegativePrice(t *testing.T) {
	_, err := Subtotal([]OrderItem{{ProductID: "p1", UnitPrice: dec("-0.01"), Quantity: 1}})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Item price cannot be negative", ve.Message)
}

func TestTax(t *testing.T) {
	assert.True(t, dec("19.00").Equal(Tax(dec("190.00"))))
	assert.True(t, dec("10.00").Equal(Tax(dec("100.00"))))
	// Rounded to cents.
	assert.True(t, dec("0.01").Equal(Tax(dec("0.05"))))
}

func TestDefaultShippingCost(t *testing.T) {
	assert.True(t, dec("10.00").Equal(DefaultShippingCost()))
}

func TestTotal(t *testing.T) {
	total := Total(dec("100.00"), dec("10.00"), dec("10.00"), dec("20.00"))
	assert.True(t, dec("100.00").Equal(total), "got %s", total)

	noDiscount := Total(dec("100.00"), dec("10.00"), dec("10.00"), decimal.Zero)
	assert.True(t, dec("120.00").Equal(noDiscount), "got %s", noDiscount)
}
