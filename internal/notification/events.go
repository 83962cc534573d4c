package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/shoplane/orders-api/internal/domain/order"
	"github.com/shoplane/orders-api/internal/domain/user"
)

// OrderEvents adapts a Notifier to the order service's event interface.
// It resolves the recipient address from the user repository and logs any
// delivery failure without propagating it.
type OrderEvents struct {
	users    user.Repository
	notifier Notifier
	lg       *zap.Logger
}

var _ order.Notifier = (*OrderEvents)(nil)

// NewOrderEvents creates an OrderEvents adapter.
func NewOrderEvents(users user.Repository, notifier Notifier, lg *zap.Logger) *OrderEvents {
	return &OrderEvents{users: users, notifier: notifier, lg: lg}
}

func (e *OrderEvents) OrderCreated(ctx context.Context, o *order.Order) {
	u, err := e.users.GetByID(ctx, o.UserID)
	if err != nil {
		e.lg.Warn("order confirmation skipped: user lookup failed",
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
		return
	}
	if err := e.notifier.SendOrderConfirmation(ctx, u.Email, o.OrderNumber, o.Total); err != nil {
		e.lg.Warn("order confirmation not delivered",
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
	}
}

func (e *OrderEvents) OrderShipped(ctx context.Context, o *order.Order) {
	u, err := e.users.GetByID(ctx, o.UserID)
	if err != nil {
		e.lg.Warn("shipping notification skipped: user lookup failed",
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
		return
	}
	if err := e.notifier.SendShippingNotification(ctx, u.Email, o.OrderNumber, o.TrackingNumber); err != nil {
		e.lg.Warn("shipping notification not delivered",
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
	}
}

// UserEvents adapts a Notifier to the user service's event interface.
type UserEvents struct {
	notifier Notifier
	lg       *zap.Logger
}

var _ user.Notifier = (*UserEvents)(nil)

// NewUserEvents creates a UserEvents adapter.
func NewUserEvents(notifier Notifier, lg *zap.Logger) *UserEvents {
	return &UserEvents{notifier: notifier, lg: lg}
}

func (e *UserEvents) UserRegistered(ctx context.Context, u *user.User) {
	if err := e.notifier.SendWelcomeEmail(ctx, u.Email, u.Name); err != nil {
		e.lg.Warn("welcome email not delivered",
			zap.String("user_id", u.ID),
			zap.Error(err),
		)
	}
}
