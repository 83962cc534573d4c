package product

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// ErrDuplicateSKU is returned by the storage layer when a SKU uniqueness
// constraint is violated.
var ErrDuplicateSKU = errors.New("duplicate sku")

// ConflictError indicates a catalog uniqueness violation.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ValidationError indicates malformed catalog input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Product represents a catalog item available for purchase. SKU is unique
// across the catalog.
type Product struct {
	ID        string
	Name      string
	SKU       string
	Price     decimal.Decimal
	Category  string
	CreatedAt time.Time
}

// Repository defines persistence operations for the product catalog.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetBySKU(ctx context.Context, sku string) (*Product, error)
}
