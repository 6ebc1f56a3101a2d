package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/epic-events/epic-crm/internal/roles"
	"github.com/epic-events/epic-crm/internal/shared"
)

// RoleResolver looks up a role by id or name.
type RoleResolver interface {
	Resolve(ctx context.Context, ref string) (roles.Role, error)
}

// Service handles user business logic.
type Service struct {
	repo  Repository
	roles RoleResolver
	hash  func(string) (string, error)
}

// NewService builds Service instance.
func NewService(repo Repository, roles RoleResolver) *Service {
	return &Service{repo: repo, roles: roles, hash: HashPassword}
}

// Create inserts a user and its empty profile in one transaction.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = normalizeEmail(req.Email)
	if err := shared.ValidateStruct(req); err != nil {
		return nil, err
	}

	role, err := s.roles.Resolve(ctx, req.Role)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, 0, &req.Username, &req.Email); err != nil {
		return nil, err
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		Username:     req.Username,
		PasswordHash: hash,
		RoleID:       role.ID,
		Email:        req.Email,
	}

	var id int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		id, err = tx.Create(ctx, user)
		if err != nil {
			return err
		}
		return tx.CreateProfile(ctx, id, "")
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.repo.Get(ctx, id)
}

// Update applies an administrative edit.
func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest) (*User, error) {
	if req.Username != nil {
		v := strings.TrimSpace(*req.Username)
		req.Username = &v
	}
	if req.Email != nil {
		v := normalizeEmail(*req.Email)
		req.Email = &v
	}
	if err := shared.ValidateStruct(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	var changes Changes
	if req.Username != nil && *req.Username != existing.Username {
		changes.Username = req.Username
	}
	if req.Email != nil && *req.Email != existing.Email {
		changes.Email = req.Email
	}
	if req.Role != nil {
		role, err := s.roles.Resolve(ctx, *req.Role)
		if err != nil {
			return nil, err
		}
		if role.ID != existing.RoleID {
			changes.RoleID = &role.ID
		}
	}
	if req.Password != nil {
		hash, err := s.hash(*req.Password)
		if err != nil {
			return nil, err
		}
		changes.PasswordHash = &hash
	}

	if changes.Empty() {
		return existing, nil
	}
	if err := s.ensureUnique(ctx, id, changes.Username, changes.Email); err != nil {
		return nil, err
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		return tx.Update(ctx, id, changes)
	})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return s.repo.Get(ctx, id)
}

// UpdateProfile lets a user edit their own email and bio.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*Profile, error) {
	if req.Email != nil {
		v := normalizeEmail(*req.Email)
		req.Email = &v
	}
	if err := shared.ValidateStruct(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var email *string
	if req.Email != nil && *req.Email != existing.Email {
		email = req.Email
		if err := s.ensureUnique(ctx, userID, nil, email); err != nil {
			return nil, err
		}
	}
	bioChanged := req.Bio != nil && *req.Bio != existing.Bio
	if email == nil && !bioChanged {
		return existing, nil
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if email != nil {
			if err := tx.Update(ctx, userID, Changes{Email: email}); err != nil {
				return err
			}
		}
		if bioChanged {
			return tx.UpdateProfile(ctx, userID, *req.Bio)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return s.repo.GetProfile(ctx, userID)
}

// Delete removes a user. The profile follows by cascade; contact references are cleared.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if caller, ok := shared.CallerFromContext(ctx); ok && caller.UserID == id {
		return shared.NewValidationError("id", "you cannot delete your own account")
	}
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.Get(ctx, id)
}

// GetProfile returns the profile of a user.
func (s *Service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) ensureUnique(ctx context.Context, selfID int64, username, email *string) error {
	if username != nil {
		existing, err := s.repo.GetByUsername(ctx, *username)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("check existing username: %w", err)
		}
		if existing != nil && existing.ID != selfID {
			return shared.NewValidationError("username", "already exists")
		}
	}
	if email != nil {
		existing, err := s.repo.GetByEmail(ctx, *email)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("check existing email: %w", err)
		}
		if existing != nil && existing.ID != selfID {
			return shared.NewValidationError("email", "already exists")
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
