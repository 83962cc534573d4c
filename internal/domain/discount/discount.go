package discount

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// ErrUnknownCode is returned when a discount code is not in the known set.
var ErrUnknownCode = errors.New("unknown discount code")

// Code is a known promotional code. Codes only mark eligibility for a
// discount; the discount amount itself is supplied when it is applied to
// an order.
type Code struct {
	Code        string
	Description string
	CreatedAt   time.Time
}

// Repository defines persistence operations for the discount code set.
type Repository interface {
	FindByCode(ctx context.Context, code string) (*Code, error)
	InsertCodes(ctx context.Context, codes []Code) error
	AllCodes(ctx context.Context) ([]string, error)
}
