package order

import "context"

// Notifier receives order lifecycle events. Implementations deliver the
// customer-facing notifications and absorb their own failures; a failed
// notification never aborts the triggering operation.
type Notifier interface {
	OrderCreated(ctx context.Context, o *Order)
	OrderShipped(ctx context.Context, o *Order)
}

// NopNotifier is the null object used when no notifier is wired.
type NopNotifier struct{}

func (NopNotifier) OrderCreated(context.Context, *Order) {}

func (NopNotifier) OrderShipped(context.Context, *Order) {}
