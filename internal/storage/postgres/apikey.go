package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shoplane/orders-api/internal/domain/auth"
)

var _ auth.Repository = (*APIKeyRepository)(nil)

// APIKeyRepository implements auth.Repository backed by PostgreSQL.
type APIKeyRepository struct {
	pool *pgxpool.Pool
}

// NewAPIKeyRepository returns an APIKeyRepository that uses the given pool.
func NewAPIKeyRepository(pool *pgxpool.Pool) *APIKeyRepository {
	return &APIKeyRepository{pool: pool}
}

// FindByHash returns the key matching the given hash or auth.ErrNotFound.
func (r *APIKeyRepository) FindByHash(ctx context.Context, hash string) (*auth.APIKey, error) {
	const q = `SELECT id, key_hash, name, created_at FROM api_keys WHERE key_hash = $1`

	var k auth.APIKey
	err := r.pool.QueryRow(ctx, q, hash).Scan(&k.ID, &k.KeyHash, &k.Name, &k.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrNotFound
		}
		return nil, errors.Wrap(err, "scan api key")
	}

	return &k, nil
}

// Insert provisions a new API key. Seeding the same hash twice is a no-op.
func (r *APIKeyRepository) Insert(ctx context.Context, key *auth.APIKey) error {
	const q = `INSERT INTO api_keys (id, key_hash, name)
		VALUES ($1, $2, $3) ON CONFLICT (key_hash) DO NOTHING`

	if _, err := r.pool.Exec(ctx, q, key.ID, key.KeyHash, key.Name); err != nil {
		return errors.Wrapf(err, "insert api key %q", key.Name)
	}

	return nil
}
