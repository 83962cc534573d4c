package discount

import (
	"context"

	"github.com/go-faster/errors"
)

// Validator resolves discount codes, consulting the Screen before the
// Repository so unknown codes are rejected without a query.
type Validator struct {
	screen *Screen
	codes  Repository
}

// NewValidator creates a Validator. The screen is optional; without one
// every lookup goes to the repository.
func NewValidator(screen *Screen, codes Repository) *Validator {
	return &Validator{screen: screen, codes: codes}
}

// Validate returns the code row or ErrUnknownCode.
func (v *Validator) Validate(ctx context.Context, code string) (*Code, error) {
	if v.screen != nil && !v.screen.MayContain(code) {
		return nil, ErrUnknownCode
	}

	c, err := v.codes.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrUnknownCode) {
			return nil, ErrUnknownCode
		}
		return nil, errors.Wrap(err, "lookup discount code")
	}

	return c, nil
}
