package cli

import (
	"context"
	"strings"

	"github.com/epic-events/epic-crm/internal/clients"
	"github.com/epic-events/epic-crm/internal/contracts"
	"github.com/epic-events/epic-crm/internal/events"
	"github.com/epic-events/epic-crm/internal/shared"
	"github.com/epic-events/epic-crm/internal/users"
)

// calls records every service method the shell reached.
type calls []string

func (c *calls) add(name string) { *c = append(*c, name) }

type stubUsers struct {
	calls   *calls
	created users.CreateUserRequest
	updated users.UpdateUserRequest
	profile users.UpdateProfileRequest
	err     error
}

func (s *stubUsers) Create(ctx context.Context, req users.CreateUserRequest) (*users.User, error) {
	s.calls.add("users.Create")
	s.created = req
	if s.err != nil {
		return nil, s.err
	}
	return &users.User{ID: 7, Username: req.Username, Role: req.Role, Email: req.Email}, nil
}

func (s *stubUsers) Update(ctx context.Context, id int64, req users.UpdateUserRequest) (*users.User, error) {
	s.calls.add("users.Update")
	s.updated = req
	return &users.User{ID: id, Username: "updated"}, s.err
}

func (s *stubUsers) UpdateProfile(ctx context.Context, userID int64, req users.UpdateProfileRequest) (*users.Profile, error) {
	s.calls.add("users.UpdateProfile")
	s.profile = req
	if s.err != nil {
		return nil, s.err
	}
	return &users.Profile{UserID: userID, Email: *req.Email}, nil
}

func (s *stubUsers) Delete(ctx context.Context, id int64) error {
	s.calls.add("users.Delete")
	return s.err
}

func (s *stubUsers) Get(ctx context.Context, id int64) (*users.User, error) {
	s.calls.add("users.Get")
	if s.err != nil {
		return nil, s.err
	}
	return &users.User{ID: id, Username: "someone"}, nil
}

func (s *stubUsers) GetProfile(ctx context.Context, userID int64) (*users.Profile, error) {
	s.calls.add("users.GetProfile")
	return &users.Profile{UserID: userID, Username: "alice", Role: shared.RoleCommercial}, s.err
}

func (s *stubUsers) List(ctx context.Context) ([]users.User, error) {
	s.calls.add("users.List")
	return []users.User{{ID: 1, Username: "admin", Role: shared.RoleManagement}}, s.err
}

type stubClients struct {
	calls        *calls
	created      clients.CreateClientRequest
	salesContact int64
	updated      clients.UpdateClientRequest
	err          error
}

func (s *stubClients) Create(ctx context.Context, req clients.CreateClientRequest, salesContactID int64) (*clients.Client, error) {
	s.calls.add("clients.Create")
	s.created = req
	s.salesContact = salesContactID
	if s.err != nil {
		return nil, s.err
	}
	return &clients.Client{ID: 3, FirstName: req.FirstName, LastName: req.LastName, CompanyName: req.CompanyName}, nil
}

func (s *stubClients) Update(ctx context.Context, id int64, req clients.UpdateClientRequest) (*clients.Client, error) {
	s.calls.add("clients.Update")
	s.updated = req
	return &clients.Client{ID: id}, s.err
}

func (s *stubClients) Delete(ctx context.Context, id int64) error {
	s.calls.add("clients.Delete")
	return s.err
}

func (s *stubClients) Get(ctx context.Context, id int64) (*clients.Client, error) {
	s.calls.add("clients.Get")
	return &clients.Client{ID: id}, s.err
}

func (s *stubClients) List(ctx context.Context, filter clients.ListFilter) ([]clients.Client, error) {
	s.calls.add("clients.List")
	return nil, s.err
}

type stubContracts struct {
	calls   *calls
	created contracts.CreateContractRequest
	updated contracts.UpdateContractRequest
	filter  contracts.ListFilter
	err     error
}

func (s *stubContracts) Create(ctx context.Context, req contracts.CreateContractRequest, salesContactID int64) (*contracts.Contract, error) {
	s.calls.add("contracts.Create")
	s.created = req
	if s.err != nil {
		return nil, s.err
	}
	return &contracts.Contract{ID: 5, TotalAmount: req.TotalAmount, AmountRemaining: req.AmountRemaining}, nil
}

func (s *stubContracts) Update(ctx context.Context, id int64, req contracts.UpdateContractRequest) (*contracts.Contract, error) {
	s.calls.add("contracts.Update")
	s.updated = req
	if s.err != nil {
		return nil, s.err
	}
	return &contracts.Contract{ID: id}, nil
}

func (s *stubContracts) Sign(ctx context.Context, id int64) (*contracts.Contract, error) {
	s.calls.add("contracts.Sign")
	return &contracts.Contract{ID: id, Status: contracts.StatusSigned}, s.err
}

func (s *stubContracts) Delete(ctx context.Context, id int64) error {
	s.calls.add("contracts.Delete")
	return s.err
}

func (s *stubContracts) Get(ctx context.Context, id int64) (*contracts.Contract, error) {
	s.calls.add("contracts.Get")
	return &contracts.Contract{ID: id}, s.err
}

func (s *stubContracts) List(ctx context.Context, filter contracts.ListFilter) ([]contracts.Contract, error) {
	s.calls.add("contracts.List")
	s.filter = filter
	return nil, s.err
}

type stubEvents struct {
	calls   *calls
	created events.CreateEventRequest
	updated events.UpdateEventRequest
	filter  events.ListFilter
	err     error
}

func (s *stubEvents) Create(ctx context.Context, req events.CreateEventRequest) (*events.Event, error) {
	s.calls.add("events.Create")
	s.created = req
	if s.err != nil {
		return nil, s.err
	}
	return &events.Event{ID: 9, ContractID: req.ContractID, EventDateStart: req.EventDateStart}, nil
}

func (s *stubEvents) Update(ctx context.Context, id int64, req events.UpdateEventRequest) (*events.Event, error) {
	s.calls.add("events.Update")
	s.updated = req
	if s.err != nil {
		return nil, s.err
	}
	return &events.Event{ID: id}, nil
}

func (s *stubEvents) AssignSupport(ctx context.Context, id, supportUserID int64) (*events.Event, error) {
	s.calls.add("events.AssignSupport")
	if s.err != nil {
		return nil, s.err
	}
	return &events.Event{ID: id, SupportContactID: &supportUserID, SupportContact: "sam"}, nil
}

func (s *stubEvents) Delete(ctx context.Context, id int64) error {
	s.calls.add("events.Delete")
	return s.err
}

func (s *stubEvents) Get(ctx context.Context, id int64) (*events.Event, error) {
	s.calls.add("events.Get")
	return &events.Event{ID: id}, s.err
}

func (s *stubEvents) List(ctx context.Context, filter events.ListFilter) ([]events.Event, error) {
	s.calls.add("events.List")
	s.filter = filter
	return nil, s.err
}

type fixture struct {
	calls     *calls
	users     *stubUsers
	clients   *stubClients
	contracts *stubContracts
	events    *stubEvents
	out       *strings.Builder
	shell     *Shell
}
