package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the order lifecycle state. An order holds exactly one status at
// a time and moves along the transition graph below.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// transitions lists the legal edges of the lifecycle graph. DELIVERED and
// CANCELLED are terminal and have no outgoing edges.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
}

// IsTerminal reports whether no further transition is legal from s.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the edge s -> next exists in the
// lifecycle graph.
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// PaymentStatus tracks whether funds have been captured for an order.
// It is an independent axis from Status: shipping an unpaid order is
// not blocked.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

// Address is the structural shipping destination of an order. It is
// immutable after creation.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// OrderItem is a single product line within an order. Subtotal is the
// denormalized unit price times quantity.
type OrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Order is the central entity: line items, denormalized monetary fields,
// the two status axes, and one timestamp per lifecycle transition. Each
// timestamp is set exactly once and never cleared.
type Order struct {
	ID              string
	OrderNumber     string
	UserID          string
	Items           []OrderItem
	Subtotal        decimal.Decimal
	TaxAmount       decimal.Decimal
	ShippingCost    decimal.Decimal
	DiscountCode    string
	DiscountAmount  decimal.Decimal
	Total           decimal.Decimal
	Status          Status
	PaymentStatus   PaymentStatus
	TrackingNumber  string
	ShippingAddress Address
	CreatedAt       time.Time
	PaidAt          *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
}

// CanBeCancelled reports whether cancellation is still legal, i.e. the
// order has not shipped and is not already terminal.
func (o *Order) CanBeCancelled() bool {
	return o.Status == StatusPending || o.Status == StatusConfirmed
}

// IsFulfilled reports whether the order reached DELIVERED.
func (o *Order) IsFulfilled() bool {
	return o.Status == StatusDelivered
}

// IsPaid reports whether funds were captured for the order.
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentPaid
}

// TotalItemsCount returns the sum of line item quantities.
func (o *Order) TotalItemsCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// CalculateSubtotal recomputes the subtotal from the line items. The
// persisted denormalized field stays authoritative; this is a
// verification helper.
func (o *Order) CalculateSubtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum.Round(2)
}

// CalculateTotal recomputes the total from the current monetary fields.
func (o *Order) CalculateTotal() decimal.Decimal {
	return Total(o.Subtotal, o.TaxAmount, o.ShippingCost, o.DiscountAmount)
}

// StatusCount is one row of the per-status order count aggregate.
// Statuses with no orders do not appear.
type StatusCount struct {
	Status Status `json:"status"`
	Count  int64  `json:"count"`
}

// UpdateFields is the partial update applied when a discount is attached
// to an order.
type UpdateFields struct {
	DiscountCode   string
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// Repository defines persistence operations for orders. Every mutation is
// a single-row read-modify-write; the returned Order reflects the
// persisted state.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByUserID(ctx context.Context, userID string) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) (*Order, error)
	MarkAsShipped(ctx context.Context, id, trackingNumber string) (*Order, error)
	MarkAsDelivered(ctx context.Context, id string) (*Order, error)
	CancelOrder(ctx context.Context, id string) (*Order, error)
	Update(ctx context.Context, id string, fields UpdateFields) (*Order, error)
	NextOrderNumber(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	OrderStats(ctx context.Context) ([]StatusCount, error)
}
