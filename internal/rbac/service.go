package rbac

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/epic-events/epic-crm/internal/shared"
)

// Service answers permission checks from a Matrix loaded out of the permissions table.
// The loaded Matrix is never mutated; Load and Reseed swap in a new one.
type Service struct {
	repo   Repository
	logger *slog.Logger
	matrix atomic.Pointer[Matrix]
}

// NewService constructs a Service. It denies everything until Load succeeds.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Load reads the permissions table and replaces the current Matrix.
func (s *Service) Load(ctx context.Context) error {
	grants, err := s.repo.ListGrants(ctx)
	if err != nil {
		return fmt.Errorf("rbac: load grants: %w", err)
	}
	m := NewMatrix(grants)
	s.matrix.Store(m)
	s.logger.Debug("rbac matrix loaded", slog.Int("grants", m.Len()))
	return nil
}

// Reseed replaces every stored grant with DefaultGrants and reloads.
func (s *Service) Reseed(ctx context.Context) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.DeleteAllGrants(ctx); err != nil {
			return err
		}
		for _, g := range DefaultGrants() {
			if err := tx.InsertGrant(ctx, g); err != nil {
				return fmt.Errorf("insert grant %s: %w", g, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("rbac: reseed: %w", err)
	}
	s.logger.Info("rbac permissions reseeded", slog.Int("grants", len(DefaultGrants())))
	return s.Load(ctx)
}

// EnsureSeeded reseeds only when the permissions table is empty. It reports whether it seeded.
func (s *Service) EnsureSeeded(ctx context.Context) (bool, error) {
	if err := s.Load(ctx); err != nil {
		return false, err
	}
	if s.matrix.Load().Len() > 0 {
		return false, nil
	}
	if err := s.Reseed(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// IsAuthorized reports whether role holds the grant. Unknown inputs are denied.
func (s *Service) IsAuthorized(role string, entity shared.Entity, action shared.Action) bool {
	return s.matrix.Load().Allows(role, entity, action)
}

// Grants returns the loaded grants.
func (s *Service) Grants() []Grant {
	return s.matrix.Load().Grants()
}

var _ Authorizer = (*Service)(nil)
