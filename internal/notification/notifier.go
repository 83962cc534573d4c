// Package notification delivers customer-facing messages triggered by
// account and order events. Delivery failures are logged and absorbed;
// they are never fatal to the operation that triggered them.
package notification

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Notifier sends customer-facing emails.
type Notifier interface {
	SendWelcomeEmail(ctx context.Context, to, name string) error
	SendOrderConfirmation(ctx context.Context, to, orderNumber string, total decimal.Decimal) error
	SendShippingNotification(ctx context.Context, to, orderNumber, trackingNumber string) error
}

// LogNotifier writes notifications to the log instead of sending them.
// The demo backend has no mail transport.
type LogNotifier struct {
	lg *zap.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(lg *zap.Logger) *LogNotifier {
	return &LogNotifier{lg: lg}
}

func (n *LogNotifier) SendWelcomeEmail(_ context.Context, to, name string) error {
	n.lg.Info("welcome email",
		zap.String("to", to),
		zap.String("name", name),
	)
	return nil
}

func (n *LogNotifier) SendOrderConfirmation(_ context.Context, to, orderNumber string, total decimal.Decimal) error {
	n.lg.Info("order confirmation email",
		zap.String("to", to),
		zap.String("order_number", orderNumber),
		zap.String("total", total.String()),
	)
	return nil
}

func (n *LogNotifier) SendShippingNotification(_ context.Context, to, orderNumber, trackingNumber string) error {
	n.lg.Info("shipping notification email",
		zap.String("to", to),
		zap.String("order_number", orderNumber),
		zap.String("tracking_number", trackingNumber),
	)
	return nil
}

// Nop discards all notifications.
type Nop struct{}

func (Nop) SendWelcomeEmail(context.Context, string, string) error { return nil }

func (Nop) SendOrderConfirmation(context.Context, string, string, decimal.Decimal) error {
	return nil
}

func (Nop) SendShippingNotification(context.Context, string, string, string) error {
	return nil
}
