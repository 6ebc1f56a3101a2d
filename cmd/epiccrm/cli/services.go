package cli

import (
	"context"

	"github.com/epic-events/epic-crm/internal/clients"
	"github.com/epic-events/epic-crm/internal/contracts"
	"github.com/epic-events/epic-crm/internal/events"
	"github.com/epic-events/epic-crm/internal/users"
)

// UserService is the part of users.Service the shell drives.
type UserService interface {
	Create(ctx context.Context, req users.CreateUserRequest) (*users.User, error)
	Update(ctx context.Context, id int64, req users.UpdateUserRequest) (*users.User, error)
	UpdateProfile(ctx context.Context, userID int64, req users.UpdateProfileRequest) (*users.Profile, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*users.User, error)
	GetProfile(ctx context.Context, userID int64) (*users.Profile, error)
	List(ctx context.Context) ([]users.User, error)
}

// ClientService is the part of clients.Service the shell drives.
type ClientService interface {
	Create(ctx context.Context, req clients.CreateClientRequest, salesContactID int64) (*clients.Client, error)
	Update(ctx context.Context, id int64, req clients.UpdateClientRequest) (*clients.Client, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*clients.Client, error)
	List(ctx context.Context, filter clients.ListFilter) ([]clients.Client, error)
}

// ContractService is the part of contracts.Service the shell drives.
type ContractService interface {
	Create(ctx context.Context, req contracts.CreateContractRequest, salesContactID int64) (*contracts.Contract, error)
	Update(ctx context.Context, id int64, req contracts.UpdateContractRequest) (*contracts.Contract, error)
	Sign(ctx context.Context, id int64) (*contracts.Contract, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*contracts.Contract, error)
	List(ctx context.Context, filter contracts.ListFilter) ([]contracts.Contract, error)
}

// EventService is the part of events.Service the shell drives.
type EventService interface {
	Create(ctx context.Context, req events.CreateEventRequest) (*events.Event, error)
	Update(ctx context.Context, id int64, req events.UpdateEventRequest) (*events.Event, error)
	AssignSupport(ctx context.Context, id, supportUserID int64) (*events.Event, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*events.Event, error)
	List(ctx context.Context, filter events.ListFilter) ([]events.Event, error)
}

// Services bundles the domain services behind shell commands.
type Services struct {
	Users     UserService
	Clients   ClientService
	Contracts ContractService
	Events    EventService
}

var (
	_ UserService     = (*users.Service)(nil)
	_ ClientService   = (*clients.Service)(nil)
	_ ContractService = (*contracts.Service)(nil)
	_ EventService    = (*events.Service)(nil)
)
