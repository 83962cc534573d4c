package order

import (
	"fmt"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Stable validation messages, surfaced verbatim to callers.
const (
	msgEmptyItems       = "Order must contain at least one item"
	msgInvalidQuantity  = "Item quantity must be positive"
	msgNegativePrice    = "Item price cannot be negative"
	msgInvalidDiscount  = "Discount amount must be positive"
	msgDiscountTooLarge = "Discount amount cannot exceed order subtotal"
)

// ValidationError indicates malformed input, detected before any
// persistence call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InvalidStateTransitionError indicates an operation that is not legal for
// the order's current status. Operation is the past participle of the
// attempted transition ("confirmed", "shipped", "delivered", "cancelled").
type InvalidStateTransitionError struct {
	Operation string
	Status    Status
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("Order cannot be %s in current status", e.Operation)
}
