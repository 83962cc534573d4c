package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shoplane/orders-api/internal/domain/user"
)

var _ user.Repository = (*UserRepository)(nil)

const userColumns = `id, email, name, created_at`

// UserRepository implements user.Repository backed by PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a UserRepository that uses the given pool.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create persists a new account. An email uniqueness violation maps to
// user.ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	const q = `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, q, u.ID, u.Email, u.Name, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrDuplicateEmail
		}
		return errors.Wrapf(err, "create user %q", u.ID)
	}

	return nil
}

// GetByID returns the user or user.ErrNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return scanUser(r.pool.QueryRow(ctx, q, id))
}

// GetByEmail returns the user or user.ErrNotFound.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	return scanUser(r.pool.QueryRow(ctx, q, email))
}

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, errors.Wrap(err, "scan user")
	}
	return &u, nil
}
