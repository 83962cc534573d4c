package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserRepo struct {
	byID    map[string]*User
	byEmail map[string]*User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
	}
}

func (m *mockUserRepo) Create(_ context.Context, u *User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return ErrDuplicateEmail
	}
	c := *u
	m.byID[u.ID] = &c
	m.byEmail[u.Email] = &c
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *u
	return &c, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	c := *u
	return &c, nil
}

type recordingUserNotifier struct {
	registered []string
}

func (n *recordingUserNotifier) UserRegistered(_ context.Context, u *User) {
	n.registered = append(n.registered, u.Email)
}

func TestRegister(t *testing.T) {
	notifier := &recordingUserNotifier{}
	svc := NewService(newMockUserRepo(), notifier)

	u, err := svc.Register(context.Background(), "  jo@example.com ", " Jo ")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "jo@example.com", u.Email)
	assert.Equal(t, "Jo", u.Name)
	assert.Equal(t, []string{"jo@example.com"}, notifier.registered)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewService(newMockUserRepo(), nil)

	tests := []struct {
		name  string
		email string
		user  string
		msg   string
	}{
		{name: "empty email", email: "", user: "Jo", msg: "Valid email is required"},
		{name: "email without at sign", email: "jo.example.com", user: "Jo", msg: "Valid email is required"},
		{name: "blank email", email: "   ", user: "Jo", msg: "Valid email is required"},
		{name: "empty name", email: "jo@example.com", user: "", msg: "Name is required"},
		{name: "blank name", email: "jo@example.com", user: "   ", msg: "Name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.email, tt.user)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.msg, ve.Message)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	notifier := &recordingUserNotifier{}
	svc := NewService(newMockUserRepo(), notifier)

	_, err := svc.Register(context.Background(), "jo@example.com", "Jo")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "jo@example.com", "Other Jo")

	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "User with this email already exists", ce.Message)
	assert.Len(t, notifier.registered, 1, "no welcome for the failed registration")
}

func TestGetUser_NotFound(t *testing.T) {
	svc := NewService(newMockUserRepo(), nil)

	_, err := svc.GetUser(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
