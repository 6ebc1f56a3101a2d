package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/epic-events/epic-crm/internal/shared"
)

const identityField = "first_name,last_name,company_name"

// Service handles client business logic.
type Service struct {
	repo Repository
}

// NewService builds Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create inserts a client owned by salesContactID.
func (s *Service) Create(ctx context.Context, req CreateClientRequest, salesContactID int64) (*Client, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.Email = normalizeEmail(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := shared.ValidateStruct(req); err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, 0, req.FirstName, req.LastName, req.CompanyName, &req.Email); err != nil {
		return nil, err
	}

	client := Client{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
		LastContact: req.LastContact,
	}
	if salesContactID > 0 {
		client.SalesContactID = &salesContactID
	}

	var id int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		id, err = tx.Create(ctx, client)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	return s.repo.Get(ctx, id)
}

// Update applies a partial edit.
func (s *Service) Update(ctx context.Context, id int64, req UpdateClientRequest) (*Client, error) {
	trim(req.FirstName)
	trim(req.LastName)
	trim(req.CompanyName)
	trim(req.Phone)
	if req.Email != nil {
		v := normalizeEmail(*req.Email)
		req.Email = &v
	}
	if err := shared.ValidateStruct(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}

	changes := Changes{
		FirstName:      changed(req.FirstName, existing.FirstName),
		LastName:       changed(req.LastName, existing.LastName),
		Email:          changed(req.Email, existing.Email),
		Phone:          changed(req.Phone, existing.Phone),
		CompanyName:    changed(req.CompanyName, existing.CompanyName),
		LastContact:    req.LastContact,
		SalesContactID: req.SalesContactID,
	}
	if changes.Empty() {
		return existing, nil
	}

	if changes.FirstName != nil || changes.LastName != nil || changes.CompanyName != nil || changes.Email != nil {
		first := valueOr(changes.FirstName, existing.FirstName)
		last := valueOr(changes.LastName, existing.LastName)
		company := valueOr(changes.CompanyName, existing.CompanyName)
		if err := s.ensureUnique(ctx, id, first, last, company, changes.Email); err != nil {
			return nil, err
		}
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		return tx.Update(ctx, id, changes)
	})
	if err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}

	return s.repo.Get(ctx, id)
}

// Delete removes a client together with its contracts and their events.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

// Get returns a client by id.
func (s *Service) Get(ctx context.Context, id int64) (*Client, error) {
	return s.repo.Get(ctx, id)
}

// List returns clients matching filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Client, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) ensureUnique(ctx context.Context, selfID int64, first, last, company string, email *string) error {
	existing, err := s.repo.GetByIdentity(ctx, first, last, company)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("check existing client: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return shared.NewValidationError(identityField, "client %s at %s already exists", existing.FullName(), company)
	}
	if email == nil {
		return nil
	}
	existing, err = s.repo.GetByEmail(ctx, *email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("check existing email: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return shared.NewValidationError("email", "already exists")
	}
	return nil
}

func changed(v *string, current string) *string {
	if v == nil || *v == current {
		return nil
	}
	return v
}

func valueOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

func trim(v *string) {
	if v != nil {
		*v = strings.TrimSpace(*v)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
