package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shoplane/orders-api/internal/domain/product"
)

var _ product.Repository = (*ProductRepository)(nil)

const productColumns = `id, name, sku, price, category, created_at`

// ProductRepository implements product.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create persists a new product. A SKU uniqueness violation maps to
// product.ErrDuplicateSKU.
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	const q = `INSERT INTO products (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, q, p.ID, p.Name, p.SKU, p.Price, p.Category, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return product.ErrDuplicateSKU
		}
		return errors.Wrapf(err, "create product %q", p.ID)
	}

	return nil
}

// List returns the whole catalog ordered by name.
func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products ORDER BY name`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "query products")
	}
	defer rows.Close()

	products := []product.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate products")
	}

	return products, nil
}

// GetByID returns the product or product.ErrNotFound.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	return scanProduct(r.pool.QueryRow(ctx, q, id))
}

// GetBySKU returns the product or product.ErrNotFound.
func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*product.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE sku = $1`

	return scanProduct(r.pool.QueryRow(ctx, q, sku))
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Price, &p.Category, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, errors.Wrap(err, "scan product")
	}
	return &p, nil
}

// isUniqueViolation reports whether err is a postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
