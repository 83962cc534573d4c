package order

import "github.com/shopspring/decimal"

// Monetary policy of the demo shop: a fixed 10% tax rate and a flat
// shipping fee. All amounts are rounded to cents.
var (
	taxRate         = decimal.RequireFromString("0.10")
	defaultShipping = decimal.RequireFromString("10.00")
)

// Subtotal sums unit price times quantity across items. It rejects
// non-positive quantities and negative prices before any computation.
func Subtotal(items []OrderItem) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			return decimal.Zero, &ValidationError{Message: msgInvalidQuantity}
		}
		if item.UnitPrice.IsNegative() {
			return decimal.Zero, &ValidationError{Message: msgNegativePrice}
		}
		sum = sum.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum.Round(2), nil
}

// Tax returns the fixed-rate tax on subtotal, rounded to cents.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxRate).Round(2)
}

// DefaultShippingCost returns the flat shipping fee.
func DefaultShippingCost() decimal.Decimal {
	return defaultShipping
}

// Total computes subtotal + tax + shipping - discount. Discount bounds are
// enforced by the caller, so the result never goes negative.
func Total(subtotal, tax, shipping, discount decimal.Decimal) decimal.Decimal {
	return subtotal.Add(tax).Add(shipping).Sub(discount).Round(2)
}
