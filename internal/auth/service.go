package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/lotus-studio/lotus/internal/accounts"
	"github.com/lotus-studio/lotus/internal/shared"
)

// AccountStore is the account-lookup collaborator the auth module consumes.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*accounts.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *accounts.User) (*accounts.User, error)
}

// Service wraps authentication business rules.
type Service struct {
	store AccountStore
}

// NewService constructs a new Service.
func NewService(store AccountStore) *Service {
	return &Service{store: store}
}

// Authenticate validates email/password credentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*accounts.User, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Register creates a new account with a hashed credential. Duplicate emails
// surface as shared.ErrEmailTaken.
func (s *Service) Register(ctx context.Context, email, firstName, lastName, password string) error {
	taken, err := s.store.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("auth: check email: %w", err)
	}
	if taken {
		return shared.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}

	_, err = s.store.Save(ctx, &accounts.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hash),
	})
	return err
}

// Resolve loads the account behind a verified token subject. No caching: a
// deleted account is rejected on its next request.
func (s *Service) Resolve(ctx context.Context, email string) (*accounts.User, error) {
	return s.store.FindByEmail(ctx, email)
}
