package accounts

import "context"

// Service handles account business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// FindByID returns the account with the given id.
func (s *Service) FindByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// Delete removes the account with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteByID(ctx, id)
}
