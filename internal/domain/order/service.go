package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is the single entry point for all order mutations. It validates
// input, enforces the status state machine, computes derived monetary
// state, and delegates persistence to the Repository. The service holds no
// state between calls.
type Service struct {
	orders   Repository
	notifier Notifier
}

// NewService creates an order Service. A nil notifier is replaced with the
// null object, so notification wiring stays optional.
func NewService(orders Repository, notifier Notifier) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{orders: orders, notifier: notifier}
}

// CreateOrderRequest holds the validated-at-the-edge input for CreateOrder.
type CreateOrderRequest struct {
	UserID          string
	Items           []OrderItem
	ShippingAddress Address
}

// CreateOrder validates the line items, computes subtotal, tax, shipping
// and total, assigns an order number, and persists the new order with
// status PENDING and payment status PENDING.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, &ValidationError{Message: msgEmptyItems}
	}

	subtotal, err := Subtotal(req.Items)
	if err != nil {
		return nil, err
	}

	// Denormalize per-line subtotals.
	items := make([]OrderItem, len(req.Items))
	for i, item := range req.Items {
		item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		items[i] = item
	}

	seq, err := s.orders.NextOrderNumber(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "next order number")
	}

	now := time.Now().UTC()
	tax := Tax(subtotal)
	shipping := DefaultShippingCost()

	o := &Order{
		ID:              uuid.New().String(),
		OrderNumber:     FormatOrderNumber(now.Year(), seq),
		UserID:          req.UserID,
		Items:           items,
		Subtotal:        subtotal,
		TaxAmount:       tax,
		ShippingCost:    shipping,
		DiscountAmount:  decimal.Zero,
		Total:           Total(subtotal, tax, shipping, decimal.Zero),
		Status:          StatusPending,
		PaymentStatus:   PaymentPending,
		ShippingAddress: req.ShippingAddress,
		CreatedAt:       now,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	s.notifier.OrderCreated(ctx, o)

	return o, nil
}

// GetOrderByID returns the order or ErrNotFound.
func (s *Service) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	return s.orders.FindByID(ctx, id)
}

// GetUserOrders returns the user's orders newest first. A user with no
// orders yields an empty slice, not an error.
func (s *Service) GetUserOrders(ctx context.Context, userID string) ([]Order, error) {
	return s.orders.FindByUserID(ctx, userID)
}

// ConfirmOrder transitions PENDING -> CONFIRMED.
func (s *Service) ConfirmOrder(ctx context.Context, id string) (*Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransitionTo(StatusConfirmed) {
		return nil, &InvalidStateTransitionError{Operation: "confirmed", Status: o.Status}
	}
	return s.orders.UpdateStatus(ctx, id, StatusConfirmed)
}

// ProcessPayment records the payment outcome: PAID (with paid_at) when a
// payment reference is present, FAILED otherwise. Payment status is an
// independent axis and never moves the order status.
func (s *Service) ProcessPayment(ctx context.Context, id, paymentReference string) (*Order, error) {
	if _, err := s.orders.FindByID(ctx, id); err != nil {
		return nil, err
	}
	status := PaymentPaid
	if paymentReference == "" {
		status = PaymentFailed
	}
	return s.orders.UpdatePaymentStatus(ctx, id, status)
}

// ShipOrder transitions CONFIRMED -> SHIPPED and records the tracking
// number. Payment is deliberately not required before shipping; the two
// axes are uncoupled.
func (s *Service) ShipOrder(ctx context.Context, id, trackingNumber string) (*Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransitionTo(StatusShipped) {
		return nil, &InvalidStateTransitionError{Operation: "shipped", Status: o.Status}
	}

	shipped, err := s.orders.MarkAsShipped(ctx, id, trackingNumber)
	if err != nil {
		return nil, err
	}

	s.notifier.OrderShipped(ctx, shipped)

	return shipped, nil
}

// DeliverOrder transitions SHIPPED -> DELIVERED. Terminal.
func (s *Service) DeliverOrder(ctx context.Context, id string) (*Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransitionTo(StatusDelivered) {
		return nil, &InvalidStateTransitionError{Operation: "delivered", Status: o.Status}
	}
	return s.orders.MarkAsDelivered(ctx, id)
}

// CancelOrder transitions PENDING or CONFIRMED -> CANCELLED. Terminal.
func (s *Service) CancelOrder(ctx context.Context, id string) (*Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.CanBeCancelled() {
		return nil, &InvalidStateTransitionError{Operation: "cancelled", Status: o.Status}
	}
	return s.orders.CancelOrder(ctx, id)
}

// ApplyDiscount attaches a discount to the order and recomputes the total.
// The amount must be positive and must not exceed the order subtotal.
func (s *Service) ApplyDiscount(ctx context.Context, id, code string, amount decimal.Decimal) (*Order, error) {
	if !amount.IsPositive() {
		return nil, &ValidationError{Message: msgInvalidDiscount}
	}

	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(o.Subtotal) {
		return nil, &ValidationError{Message: msgDiscountTooLarge}
	}

	return s.orders.Update(ctx, id, UpdateFields{
		DiscountCode:   code,
		DiscountAmount: amount,
		Total:          Total(o.Subtotal, o.TaxAmount, o.ShippingCost, amount),
	})
}

// GetOrderTotal recomputes the total from the persisted monetary fields.
// A missing discount contributes zero.
func (s *Service) GetOrderTotal(ctx context.Context, id string) (decimal.Decimal, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return Total(o.Subtotal, o.TaxAmount, o.ShippingCost, o.DiscountAmount), nil
}

// GetTotalRevenue sums the totals of PAID orders. Zero when none exist.
func (s *Service) GetTotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	return s.orders.TotalRevenue(ctx)
}

// GetOrderStatistics returns per-status order counts. Statuses with no
// orders are omitted, following the storage group-by semantics.
func (s *Service) GetOrderStatistics(ctx context.Context) ([]StatusCount, error) {
	return s.orders.OrderStats(ctx)
}
