package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/epic-events/epic-crm/internal/shared"
)

// dummyHash keeps the timing of unknown-user logins close to wrong-password logins.
var dummyHash = []byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z1e7Vh2p1rRdyb7C1vH8aK8m")

// Service wraps authentication business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate validates username/password credentials and returns the caller identity.
func (s *Service) Authenticate(ctx context.Context, username, password string) (shared.Caller, error) {
	account, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return shared.Caller{}, shared.ErrInvalidCredentials
		}
		return shared.Caller{}, fmt.Errorf("find account: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return shared.Caller{}, shared.ErrInvalidCredentials
	}
	return toCaller(account), nil
}

// ResolveCaller re-reads a user's current identity and role.
func (s *Service) ResolveCaller(ctx context.Context, userID int64) (shared.Caller, error) {
	account, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.Caller{}, fmt.Errorf("%w: user %d no longer exists", shared.ErrSessionExpired, userID)
		}
		return shared.Caller{}, fmt.Errorf("find account: %w", err)
	}
	return toCaller(account), nil
}

func toCaller(a *Account) shared.Caller {
	return shared.Caller{UserID: a.ID, Username: a.Username, Role: a.Role}
}
