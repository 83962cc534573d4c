package auth

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when no API key matches the given hash.
var ErrNotFound = errors.New("api key not found")

// APIKey holds the identity data for a provisioned API key. Only the
// HMAC-SHA256 hash of the key material is stored.
type APIKey struct {
	ID        string
	KeyHash   string
	Name      string
	CreatedAt time.Time
}

// Repository provides lookup of API keys by their hash.
type Repository interface {
	FindByHash(ctx context.Context, hash string) (*APIKey, error)
	Insert(ctx context.Context, key *APIKey) error
}
