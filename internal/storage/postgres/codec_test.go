package postgres

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplane/orders-api/internal/domain/order"
)

func TestItemsCodec(t *testing.T) {
	items := []order.OrderItem{
		{
			ProductID:   "p1",
			ProductName: "Widget",
			ProductSKU:  "WDG-1",
			UnitPrice:   decimal.RequireFromString("49.99"),
			Quantity:    2,
			Subtotal:    decimal.RequireFromString("99.98"),
		},
		{
			ProductID: "p2",
			UnitPrice: decimal.RequireFromString("0.05"),
			Quantity:  1,
			Subtotal:  decimal.RequireFromString("0.05"),
		},
	}

	decoded, err := decodeItems(encodeItems(items))
	require.NoError(t, err)
	require.Len(t, decoded, 2)

	assert.Equal(t, "p1", decoded[0].ProductID)
	assert.Equal(t, "WDG-1", decoded[0].ProductSKU)
	assert.Equal(t, 2, decoded[0].Quantity)
	// Decimals round-trip exactly through the string encoding.
	assert.True(t, items[0].UnitPrice.Equal(decoded[0].UnitPrice))
	assert.True(t, items[1].Subtotal.Equal(decoded[1].Subtotal))
}

func TestItemsCodec_EmptyArray(t *testing.T) {
	decoded, err := decodeItems(encodeItems(nil))
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestItemsCodec_UnknownFieldsSkipped(t *testing.T) {
	data := []byte(`[{"product_id":"p1","legacy_field":{"x":1},"quantity":3,"unit_price":"1.50","subtotal":"4.50"}]`)

	decoded, err := decodeItems(data)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "p1", decoded[0].ProductID)
	assert.Equal(t, 3, decoded[0].Quantity)
}

func TestItemsCodec_Malformed(t *testing.T) {
	_, err := decodeItems([]byte(`[{"unit_price":12.5}]`))
	assert.Error(t, err, "numeric unit_price is rejected, amounts are strings")
}

func TestAddressCodec(t *testing.T) {
	a := order.Address{
		Street:     "1 Main St",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
		Country:    "US",
	}

	decoded, err := decodeAddress(encodeAddress(a))
	require.NoError(t, err)
	assert.Equal(t, a, decoded)
}
