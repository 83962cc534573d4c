package user

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested user does not exist.
var ErrNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned by the storage layer when the email
// uniqueness constraint is violated.
var ErrDuplicateEmail = errors.New("duplicate email")

// ConflictError indicates an account uniqueness violation.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ValidationError indicates malformed account input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// User is a customer account.
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}

// Repository defines persistence operations for user accounts.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// Notifier receives account lifecycle events. Implementations absorb their
// own failures; a failed notification never aborts registration.
type Notifier interface {
	UserRegistered(ctx context.Context, u *User)
}

// NopNotifier is the null object used when no notifier is wired.
type NopNotifier struct{}

func (NopNotifier) UserRegistered(context.Context, *User) {}
