package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProductRepo struct {
	byID  map[string]*Product
	bySKU map[string]*Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{
		byID:  make(map[string]*Product),
		bySKU: make(map[string]*Product),
	}
}

func (m *mockProductRepo) Create(_ context.Context, p *Product) error {
	if _, ok := m.bySKU[p.SKU]; ok {
		return ErrDuplicateSKU
	}
	c := *p
	m.byID[p.ID] = &c
	m.bySKU[p.SKU] = &c
	return nil
}

func (m *mockProductRepo) List(_ context.Context) ([]Product, error) {
	out := make([]Product, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *p
	return &c, nil
}

func (m *mockProductRepo) GetBySKU(_ context.Context, sku string) (*Product, error) {
	p, ok := m.bySKU[sku]
	if !ok {
		return nil, ErrNotFound
	}
	c := *p
	return &c, nil
}

func TestCreateProduct(t *testing.T) {
	svc := NewService(newMockProductRepo())

	p, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name:     "Widget",
		SKU:      "WDG-1",
		Price:    decimal.RequireFromString("49.999"),
		Category: "Hardware",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Widget", p.Name)
	assert.True(t, decimal.RequireFromString("50.00").Equal(p.Price), "price %s", p.Price)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := NewService(newMockProductRepo())

	tests := []struct {
		name string
		req  CreateProductRequest
		msg  string
	}{
		{
			name: "missing name",
			req:  CreateProductRequest{SKU: "WDG-1", Price: decimal.NewFromInt(1)},
			msg:  "Product name is required",
		},
		{
			name: "missing sku",
			req:  CreateProductRequest{Name: "Widget", Price: decimal.NewFromInt(1)},
			msg:  "Product SKU is required",
		},
		{
			name: "negative price",
			req:  CreateProductRequest{Name: "Widget", SKU: "WDG-1", Price: decimal.NewFromInt(-1)},
			msg:  "Product price cannot be negative",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), tt.req)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.msg, ve.Message)
		})
	}
}

func TestCreateProduct_ZeroPriceAllowed(t *testing.T) {
	svc := NewService(newMockProductRepo())

	p, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name: "Freebie", SKU: "FREE-1", Price: decimal.Zero,
	})
	require.NoError(t, err)
	assert.True(t, p.Price.IsZero())
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	svc := NewService(newMockProductRepo())

	_, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name: "Widget", SKU: "WDG-1", Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), CreateProductRequest{
		Name: "Widget v2", SKU: "WDG-1", Price: decimal.NewFromInt(12),
	})

	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Product with this SKU already exists", ce.Message)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := NewService(newMockProductRepo())

	_, err := svc.GetProduct(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListProducts(t *testing.T) {
	svc := NewService(newMockProductRepo())

	list, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	for _, sku := range []string{"A-1", "B-2"} {
		_, err := svc.CreateProduct(context.Background(), CreateProductRequest{
			Name: sku, SKU: sku, Price: decimal.NewFromInt(5),
		})
		require.NoError(t, err)
	}

	list, err = svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
