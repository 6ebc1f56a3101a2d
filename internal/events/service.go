package events

import (
	"context"
	"fmt"

	"github.com/epic-events/epic-crm/internal/contracts"
	"github.com/epic-events/epic-crm/internal/shared"
	"github.com/epic-events/epic-crm/internal/users"
)

// ContractLookup fetches the contract an event belongs to.
type ContractLookup interface {
	Get(ctx context.Context, id int64) (*contracts.Contract, error)
}

// UserLookup fetches a prospective support contact.
type UserLookup interface {
	Get(ctx context.Context, id int64) (*users.User, error)
}

// Service handles event business logic.
type Service struct {
	repo      Repository
	contracts ContractLookup
	users     UserLookup
}

// NewService builds Service instance.
func NewService(repo Repository, contracts ContractLookup, users UserLookup) *Service {
	return &Service{repo: repo, contracts: contracts, users: users}
}

// Create schedules an event under a signed contract. The event starts unassigned.
func (s *Service) Create(ctx context.Context, req CreateEventRequest) (*Event, error) {
	if err := shared.ValidateStruct(req); err != nil {
		return nil, err
	}

	contract, err := s.contracts.Get(ctx, req.ContractID)
	if err != nil {
		return nil, fmt.Errorf("get contract: %w", err)
	}
	if contract.Status != contracts.StatusSigned {
		return nil, shared.NewValidationError("contract_id", "contract %d is not signed", contract.ID)
	}

	event := Event{
		ContractID:     req.ContractID,
		EventDateStart: req.EventDateStart,
		EventDateEnd:   req.EventDateEnd,
		Location:       req.Location,
		Attendees:      req.Attendees,
		Notes:          req.Notes,
	}

	var id int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		id, err = tx.Create(ctx, event)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	return s.repo.Get(ctx, id)
}

// Update applies a partial edit. The merged schedule must not end before it starts.
func (s *Service) Update(ctx context.Context, id int64, req UpdateEventRequest) (*Event, error) {
	if err := shared.ValidateStruct(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	var changes Changes
	if req.EventDateStart != nil && !req.EventDateStart.Equal(existing.EventDateStart) {
		changes.EventDateStart = req.EventDateStart
	}
	if req.EventDateEnd != nil && !req.EventDateEnd.Equal(existing.EventDateEnd) {
		changes.EventDateEnd = req.EventDateEnd
	}
	if req.Location != nil && *req.Location != existing.Location {
		changes.Location = req.Location
	}
	if req.Attendees != nil && *req.Attendees != existing.Attendees {
		changes.Attendees = req.Attendees
	}
	if req.Notes != nil && *req.Notes != existing.Notes {
		changes.Notes = req.Notes
	}
	if changes.Empty() {
		return existing, nil
	}

	start, end := existing.EventDateStart, existing.EventDateEnd
	if changes.EventDateStart != nil {
		start = *changes.EventDateStart
	}
	if changes.EventDateEnd != nil {
		end = *changes.EventDateEnd
	}
	if end.Before(start) {
		return nil, shared.NewValidationError("event_date_end", "must not be before event_date_start")
	}

	if err := s.apply(ctx, id, changes); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// AssignSupport sets the support contact of an event. The user must hold the Support role.
func (s *Service) AssignSupport(ctx context.Context, id, supportUserID int64) (*Event, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	user, err := s.users.Get(ctx, supportUserID)
	if err != nil {
		return nil, fmt.Errorf("get support contact: %w", err)
	}
	if user.Role != shared.RoleSupport {
		return nil, shared.NewValidationError("support_contact_id", "user %s does not have the %s role", user.Username, shared.RoleSupport)
	}

	if err := s.apply(ctx, id, Changes{SupportContactID: &user.ID}); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes an event.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// Get returns an event by id.
func (s *Service) Get(ctx context.Context, id int64) (*Event, error) {
	return s.repo.Get(ctx, id)
}

// List returns events matching filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Event, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) apply(ctx context.Context, id int64, changes Changes) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		return tx.Update(ctx, id, changes)
	})
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}
