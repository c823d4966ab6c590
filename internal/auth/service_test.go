package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lotus-studio/lotus/internal/accounts"
	"github.com/lotus-studio/lotus/internal/shared"
)

type stubStore struct {
	users map[string]*accounts.User
	saved []*accounts.User
}

func newStubStore(users ...*accounts.User) *stubStore {
	s := &stubStore{users: make(map[string]*accounts.User)}
	for _, u := range users {
		s.users[u.Email] = u
	}
	return s
}

func (s *stubStore) FindByEmail(ctx context.Context, email string) (*accounts.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (s *stubStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := s.users[email]
	return ok, nil
}

func (s *stubStore) Save(ctx context.Context, user *accounts.User) (*accounts.User, error) {
	if _, ok := s.users[user.Email]; ok {
		return nil, shared.ErrEmailTaken
	}
	user.ID = int64(len(s.users) + 1)
	s.users[user.Email] = user
	s.saved = append(s.saved, user)
	return user, nil
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthenticate(t *testing.T) {
	store := newStubStore(&accounts.User{
		ID:           1,
		Email:        "user@example.com",
		PasswordHash: hashFor(t, "correctpass"),
	})
	service := NewService(store)

	user, err := service.Authenticate(context.Background(), "user@example.com", "correctpass")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	_, err = service.Authenticate(context.Background(), "user@example.com", "wrongpass")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, err = service.Authenticate(context.Background(), "ghost@example.com", "correctpass")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestRegister(t *testing.T) {
	store := newStubStore()
	service := NewService(store)

	err := service.Register(context.Background(), "new@example.com", "Jane", "Smith", "password")
	require.NoError(t, err)
	require.Len(t, store.saved, 1)

	saved := store.saved[0]
	assert.Equal(t, "new@example.com", saved.Email)
	assert.Equal(t, "Jane", saved.FirstName)
	assert.Equal(t, "Smith", saved.LastName)
	assert.False(t, saved.Admin)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("password")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newStubStore(&accounts.User{Email: "user@example.com"})
	service := NewService(store)

	err := service.Register(context.Background(), "user@example.com", "John", "Doe", "password")
	assert.ErrorIs(t, err, shared.ErrEmailTaken)
	assert.Empty(t, store.saved)
}

func TestResolvePassThrough(t *testing.T) {
	store := newStubStore(&accounts.User{ID: 7, Email: "user@example.com", Admin: true})
	service := NewService(store)

	user, err := service.Resolve(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.True(t, user.Admin)

	_, err = service.Resolve(context.Background(), "gone@example.com")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
