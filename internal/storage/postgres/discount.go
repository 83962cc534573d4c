package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shoplane/orders-api/internal/domain/discount"
)

var _ discount.Repository = (*DiscountRepository)(nil)

// DiscountRepository implements discount.Repository backed by PostgreSQL.
type DiscountRepository struct {
	pool *pgxpool.Pool
}

// NewDiscountRepository returns a DiscountRepository that uses the given pool.
func NewDiscountRepository(pool *pgxpool.Pool) *DiscountRepository {
	return &DiscountRepository{pool: pool}
}

// FindByCode returns the code row or discount.ErrUnknownCode.
func (r *DiscountRepository) FindByCode(ctx context.Context, code string) (*discount.Code, error) {
	const q = `SELECT code, description, created_at FROM discount_codes WHERE code = $1`

	var c discount.Code
	err := r.pool.QueryRow(ctx, q, code).Scan(&c.Code, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, discount.ErrUnknownCode
		}
		return nil, errors.Wrap(err, "scan discount code")
	}

	return &c, nil
}

// InsertCodes upserts a batch of codes. Existing codes are left untouched.
func (r *DiscountRepository) InsertCodes(ctx context.Context, codes []discount.Code) error {
	const q = `INSERT INTO discount_codes (code, description)
		VALUES ($1, $2) ON CONFLICT (code) DO NOTHING`

	batch := &pgx.Batch{}
	for _, c := range codes {
		batch.Queue(q, c.Code, c.Description)
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return errors.Wrap(err, "insert discount codes")
	}

	return nil
}

// AllCodes returns every known code. Used to populate the bloom screen at
// startup.
func (r *DiscountRepository) AllCodes(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT code FROM discount_codes`)
	if err != nil {
		return nil, errors.Wrap(err, "query discount codes")
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, errors.Wrap(err, "scan discount code")
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate discount codes")
	}

	return codes, nil
}
