package user

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// Service validates account input and delegates to the Repository.
type Service struct {
	users    Repository
	notifier Notifier
}

// NewService creates a user Service. A nil notifier is replaced with the
// null object.
func NewService(users Repository, notifier Notifier) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{users: users, notifier: notifier}
}

// Register validates the input and persists a new account, then triggers
// the welcome notification. A duplicate email surfaces as a ConflictError.
func (s *Service) Register(ctx context.Context, email, name string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, &ValidationError{Message: "Valid email is required"}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Message: "Name is required"}
	}

	u := &User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, &ConflictError{Message: "User with this email already exists"}
		}
		return nil, errors.Wrap(err, "create user")
	}

	s.notifier.UserRegistered(ctx, u)

	return u, nil
}

// GetUser returns the user or ErrNotFound.
func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.users.GetByID(ctx, id)
}
