package sessions

import (
	"context"

	"github.com/lotus-studio/lotus/internal/accounts"
	"github.com/lotus-studio/lotus/internal/shared"
)

// AccountLookup is the narrow account collaborator the roster engine needs.
type AccountLookup interface {
	FindByID(ctx context.Context, id int64) (*accounts.User, error)
}

// Service owns session CRUD and the roster join/leave state machine.
type Service struct {
	repo     Repository
	accounts AccountLookup
}

// NewService builds a Service instance.
func NewService(repo Repository, accounts AccountLookup) *Service {
	return &Service{repo: repo, accounts: accounts}
}

// GetByID returns one session with its roster.
func (s *Service) GetByID(ctx context.Context, id int64) (*Session, error) {
	return s.repo.FindByID(ctx, id)
}

// FindAll returns every session.
func (s *Service) FindAll(ctx context.Context) ([]Session, error) {
	return s.repo.FindAll(ctx)
}

// Create persists a new session.
func (s *Service) Create(ctx context.Context, session *Session) (*Session, error) {
	return s.repo.Create(ctx, session)
}

// Update rewrites an existing session under the given id.
func (s *Service) Update(ctx context.Context, id int64, session *Session) (*Session, error) {
	session.ID = id
	return s.repo.Update(ctx, session)
}

// Delete removes a session and its roster.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Participate adds an account to a session roster. Both the session and the
// account must exist, and the account must not already be on the roster.
// The storage-level primary key backs the uniqueness check, so a racing
// duplicate join still fails with ErrAlreadyParticipating.
func (s *Service) Participate(ctx context.Context, sessionID, userID int64) (*Session, error) {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.accounts.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if session.HasParticipant(userID) {
		return nil, shared.ErrAlreadyParticipating
	}

	if err := s.repo.AddParticipant(ctx, sessionID, userID); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, sessionID)
}

// NoLongerParticipate removes an account from a session roster. Absence from
// the roster is checked directly, so a non-existent account and a
// never-joined one both yield ErrNotParticipating.
func (s *Service) NoLongerParticipate(ctx context.Context, sessionID, userID int64) (*Session, error) {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.HasParticipant(userID) {
		return nil, shared.ErrNotParticipating
	}

	if err := s.repo.RemoveParticipant(ctx, sessionID, userID); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, sessionID)
}
