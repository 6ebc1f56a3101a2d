package roles

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/epic-events/epic-crm/internal/shared"
)

// RepositoryPort defines data access methods for roles.
type RepositoryPort interface {
	ListRoles(ctx context.Context) ([]Role, error)
}

// Service handles role business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListRoles returns all roles.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.repo.ListRoles(ctx)
}

// Resolve finds a role by numeric id or case-insensitive name.
func (s *Service) Resolve(ctx context.Context, ref string) (Role, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Role{}, shared.NewValidationError("role", "is required")
	}
	all, err := s.repo.ListRoles(ctx)
	if err != nil {
		return Role{}, fmt.Errorf("list roles: %w", err)
	}
	id, idErr := strconv.ParseInt(ref, 10, 64)
	for _, role := range all {
		if idErr == nil && role.ID == id {
			return role, nil
		}
		if strings.EqualFold(role.Name, ref) {
			return role, nil
		}
	}
	return Role{}, shared.NewValidationError("role", "unknown role %q, expected one of %s", ref, strings.Join(shared.RoleNames(), ", "))
}
