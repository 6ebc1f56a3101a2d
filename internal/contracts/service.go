package contracts

import (
	"context"
	"fmt"

	"github.com/epic-events/epic-crm/internal/shared"
)

// Service handles contract business logic.
type Service struct {
	repo Repository
}

// NewService builds Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create inserts a contract for an existing client, owned by salesContactID.
func (s *Service) Create(ctx context.Context, req CreateContractRequest, salesContactID int64) (*Contract, error) {
	status, err := ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	req.Status = string(status)
	if err := shared.ValidateStruct(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.ClientExists(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("check client: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: client %d", shared.ErrNotFound, req.ClientID)
	}

	contract := Contract{
		ClientID:        req.ClientID,
		TotalAmount:     req.TotalAmount,
		AmountRemaining: req.AmountRemaining,
		Status:          status,
	}
	if req.DateCreated != nil {
		contract.DateCreated = *req.DateCreated
	}
	if salesContactID > 0 {
		contract.SalesContactID = &salesContactID
	}

	var id int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		id, err = tx.Create(ctx, contract)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create contract: %w", err)
	}

	return s.repo.Get(ctx, id)
}

// Update applies a partial edit. The merged amounts must keep 0 <= remaining <= total.
func (s *Service) Update(ctx context.Context, id int64, req UpdateContractRequest) (*Contract, error) {
	var status *Status
	if req.Status != nil {
		parsed, err := ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		canonical := string(parsed)
		req.Status = &canonical
		status = &parsed
	}
	if err := shared.ValidateStruct(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get contract: %w", err)
	}

	var changes Changes
	if req.TotalAmount != nil && *req.TotalAmount != existing.TotalAmount {
		changes.TotalAmount = req.TotalAmount
	}
	if req.AmountRemaining != nil && *req.AmountRemaining != existing.AmountRemaining {
		changes.AmountRemaining = req.AmountRemaining
	}
	if status != nil && *status != existing.Status {
		if !existing.Status.CanTransitionTo(*status) {
			return nil, shared.NewValidationError("status", "cannot change a %s contract to %s", existing.Status, *status)
		}
		changes.Status = status
	}
	if req.SalesContactID != nil && (existing.SalesContactID == nil || *existing.SalesContactID != *req.SalesContactID) {
		changes.SalesContactID = req.SalesContactID
	}
	if changes.Empty() {
		return existing, nil
	}

	total, remaining := existing.TotalAmount, existing.AmountRemaining
	if changes.TotalAmount != nil {
		total = *changes.TotalAmount
	}
	if changes.AmountRemaining != nil {
		remaining = *changes.AmountRemaining
	}
	if err := checkAmounts(total, remaining); err != nil {
		return nil, err
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		return tx.Update(ctx, id, changes)
	})
	if err != nil {
		return nil, fmt.Errorf("update contract: %w", err)
	}

	return s.repo.Get(ctx, id)
}

// Sign marks a contract as signed.
func (s *Service) Sign(ctx context.Context, id int64) (*Contract, error) {
	signed := string(StatusSigned)
	return s.Update(ctx, id, UpdateContractRequest{Status: &signed})
}

// Delete removes a contract together with its events.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete contract: %w", err)
	}
	return nil
}

// Get returns a contract by id.
func (s *Service) Get(ctx context.Context, id int64) (*Contract, error) {
	return s.repo.Get(ctx, id)
}

// List returns contracts matching filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Contract, error) {
	return s.repo.List(ctx, filter)
}

func checkAmounts(total, remaining Money) error {
	if total < 0 {
		return shared.NewValidationError("total_amount", "must be greater than or equal to 0")
	}
	if remaining < 0 {
		return shared.NewValidationError("amount_remaining", "must be greater than or equal to 0")
	}
	if remaining > total {
		return shared.NewValidationError("amount_remaining", "%s exceeds total_amount %s", remaining, total)
	}
	return nil
}
