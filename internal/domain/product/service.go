package product

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service validates catalog input and delegates to the Repository.
type Service struct {
	products Repository
}

// NewService creates a catalog Service.
func NewService(products Repository) *Service {
	return &Service{products: products}
}

// CreateProductRequest holds the input for CreateProduct.
type CreateProductRequest struct {
	Name     string
	SKU      string
	Price    decimal.Decimal
	Category string
}

// CreateProduct validates the input and persists a new catalog item.
// A duplicate SKU surfaces as a ConflictError.
func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if req.Name == "" {
		return nil, &ValidationError{Message: "Product name is required"}
	}
	if req.SKU == "" {
		return nil, &ValidationError{Message: "Product SKU is required"}
	}
	if req.Price.IsNegative() {
		return nil, &ValidationError{Message: "Product price cannot be negative"}
	}

	p := &Product{
		ID:        uuid.New().String(),
		Name:      req.Name,
		SKU:       req.SKU,
		Price:     req.Price.Round(2),
		Category:  req.Category,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.products.Create(ctx, p); err != nil {
		if errors.Is(err, ErrDuplicateSKU) {
			return nil, &ConflictError{Message: "Product with this SKU already exists"}
		}
		return nil, errors.Wrap(err, "create product")
	}

	return p, nil
}

// GetProduct returns the product or ErrNotFound.
func (s *Service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.products.GetByID(ctx, id)
}

// ListProducts returns the whole catalog.
func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	return s.products.List(ctx)
}
