package cli

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epic-events/epic-crm/internal/contracts"
	"github.com/epic-events/epic-crm/internal/rbac"
	"github.com/epic-events/epic-crm/internal/shared"
)

func newFixture(input string) *fixture {
	c := &calls{}
	f := &fixture{
		calls:     c,
		users:     &stubUsers{calls: c},
		clients:   &stubClients{calls: c},
		contracts: &stubContracts{calls: c},
		events:    &stubEvents{calls: c},
		out:       &strings.Builder{},
	}
	services := Services{Users: f.users, Clients: f.clients, Contracts: f.contracts, Events: f.events}
	guard := rbac.Guard{Authorizer: rbac.NewMatrix(rbac.DefaultGrants())}
	f.shell = NewShell(services, guard, NewConsole(strings.NewReader(input), f.out), f.out, nil)
	return f
}

func as(role string, id int64, username string) context.Context {
	return shared.ContextWithCaller(context.Background(), shared.Caller{UserID: id, Username: username, Role: role})
}

var (
	alice = as(shared.RoleCommercial, 2, "alice")
	sam   = as(shared.RoleSupport, 3, "sam")
	maria = as(shared.RoleManagement, 1, "maria")
)

func TestSupportCannotDeleteClient(t *testing.T) {
	f := newFixture("")

	err := f.shell.Dispatch(sam, []string{"delete_client", "1"})

	assert.ErrorIs(t, err, shared.ErrNotAuthorized)
	assert.Empty(t, *f.calls)
	assert.Equal(t, "Permission denied.", shared.UserSafeMessage(err))
}

func TestPermissionCheckedBeforeArguments(t *testing.T) {
	f := newFixture("")

	err := f.shell.Dispatch(sam, []string{"create_client"})
	assert.ErrorIs(t, err, shared.ErrNotAuthorized)
}

func TestDispatchWithoutCallerDenied(t *testing.T) {
	f := newFixture("")

	err := f.shell.Dispatch(context.Background(), []string{"list_clients"})
	assert.ErrorIs(t, err, shared.ErrNotAuthorized)

	err = f.shell.Dispatch(context.Background(), []string{"view_profile"})
	assert.ErrorIs(t, err, shared.ErrNotAuthorized)
	assert.Empty(t, *f.calls)
}

func TestCommercialCreatesClientAsSalesContact(t *testing.T) {
	f := newFixture("")

	err := f.shell.Dispatch(alice, strings.Fields("create_client Kevin Casey kevin@startup.io +678123456 Cool Startup LLC"))
	require.NoError(t, err)

	assert.Equal(t, calls{"clients.Create"}, *f.calls)
	assert.Equal(t, "Cool Startup LLC", f.clients.created.CompanyName)
	assert.Equal(t, int64(2), f.clients.salesContact)
	assert.Contains(t, f.out.String(), "Created client Kevin Casey")
}

func TestMissingArgumentsShowUsage(t *testing.T) {
	f := newFixture("")

	err := f.shell.Dispatch(alice, []string{"view_client"})

	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "usage: view_client <id>")
}

func TestInvalidIDRejected(t *testing.T) {
	f := newFixture("")

	err := f.shell.Dispatch(alice, []string{"view_client", "abc"})

	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "id", verr.Field)
	assert.Empty(t, *f.calls)
}

func TestUnknownCommand(t *testing.T) {
	f := newFixture("")

	err := f.shell.Dispatch(alice, []string{"drop_tables"})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateContractParsesAmountsAndStatus(t *testing.T) {
	f := newFixture("")

	err := f.shell.Dispatch(maria, strings.Fields("create_contract 4 1,200.50 300 Not Signed"))
	require.NoError(t, err)

	assert.Equal(t, int64(4), f.contracts.created.ClientID)
	assert.Equal(t, contracts.Money(120050), f.contracts.created.TotalAmount)
	assert.Equal(t, contracts.Money(30000), f.contracts.created.AmountRemaining)
	assert.Equal(t, "Not Signed", f.contracts.created.Status)
	assert.Contains(t, f.out.String(), "1,200.50")
}

func TestUpdateContractKeyValues(t *testing.T) {
	f := newFixture("")

	err := f.shell.Dispatch(alice, strings.Fields("update_contract 5 amount_remaining=0 status=Signed"))
	require.NoError(t, err)

	require.NotNil(t, f.contracts.updated.AmountRemaining)
	assert.Equal(t, contracts.Money(0), *f.contracts.updated.AmountRemaining)
	require.NotNil(t, f.contracts.updated.Status)
	assert.Equal(t, "Signed", *f.contracts.updated.Status)
	assert.Nil(t, f.contracts.updated.TotalAmount)
}

func TestUpdateRejectsUnknownKey(t *testing.T) {
	f := newFixture("")

	err := f.shell.Dispatch(maria, strings.Fields("update_client 1 nickname=kev"))

	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "nickname", verr.Field)
	assert.Empty(t, *f.calls)
}

func TestFilterContractsByStatus(t *testing.T) {
	f := newFixture("")

	require.NoError(t, f.shell.Dispatch(sam, []string{"filter_contracts", "not", "signed"}))
	require.NotNil(t, f.contracts.filter.Status)
	assert.Equal(t, contracts.StatusNotSigned, *f.contracts.filter.Status)
}

func TestFilterEventsAssignedToMe(t *testing.T) {
	f := newFixture("")

	require.NoError(t, f.shell.Dispatch(sam, []string{"filter_events_assigned_to_me"}))
	require.NotNil(t, f.events.filter.SupportContactID)
	assert.Equal(t, int64(3), *f.events.filter.SupportContactID)

	require.NoError(t, f.shell.Dispatch(sam, []string{"filter_events_unassigned"}))
	assert.True(t, f.events.filter.Unassigned)
}

func TestCreateEventParsesDates(t *testing.T) {
	f := newFixture("")

	err := f.shell.Dispatch(alice, strings.Fields("create_event 5 2026-06-04T13:00 2026-06-04T23:00 75 53 Rue du Château"))
	require.NoError(t, err)

	req := f.events.created
	assert.Equal(t, int64(5), req.ContractID)
	assert.Equal(t, 75, req.Attendees)
	assert.Equal(t, "53 Rue du Château", req.Location)
	assert.Equal(t, time.Date(2026, 6, 4, 13, 0, 0, 0, time.Local), req.EventDateStart)
}

func TestUpdateEventNotesSpanTokens(t *testing.T) {
	f := newFixture("")

	err := f.shell.Dispatch(sam, strings.Fields("update_event 9 notes=Wedding starts at 3PM attendees=80"))
	require.NoError(t, err)

	require.NotNil(t, f.events.updated.Notes)
	assert.Equal(t, "Wedding starts at 3PM", *f.events.updated.Notes)
	require.NotNil(t, f.events.updated.Attendees)
	assert.Equal(t, 80, *f.events.updated.Attendees)
}

func TestCommercialCannotAssignSupport(t *testing.T) {
	f := newFixture("")

	err := f.shell.Dispatch(alice, []string{"assign_support", "9", "3"})
	assert.ErrorIs(t, err, shared.ErrNotAuthorized)

	require.NoError(t, f.shell.Dispatch(maria, []string{"assign_support", "9", "3"}))
	assert.Contains(t, f.out.String(), "supported by sam")
}

func TestCreateUserPromptsPasswordTwice(t *testing.T) {
	f := newFixture("Secret123\nSecret123\n")

	err := f.shell.Dispatch(maria, strings.Fields("create_user bob Support bob@epic.events"))
	require.NoError(t, err)
	assert.Equal(t, "Secret123", f.users.created.Password)
	assert.Equal(t, "Support", f.users.created.Role)
}

func TestCreateUserPasswordMismatch(t *testing.T) {
	f := newFixture("Secret123\nSecret124\n")

	err := f.shell.Dispatch(maria, strings.Fields("create_user bob Support bob@epic.events"))
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.NotContains(t, *f.calls, "users.Create")
}

func TestProfileIsSelfService(t *testing.T) {
	f := newFixture("")

	err := f.shell.Dispatch(sam, strings.Fields("update_profile sam@epic.events On call weekends"))
	require.NoError(t, err)
	assert.Equal(t, "On call weekends", *f.users.profile.Bio)
}

func TestHelpListsOnlyPermittedCommands(t *testing.T) {
	f := newFixture("")

	require.NoError(t, f.shell.Dispatch(sam, []string{"help"}))
	out := f.out.String()
	assert.Contains(t, out, "filter_events_assigned_to_me")
	assert.Contains(t, out, "view_profile")
	assert.NotContains(t, out, "delete_client")
	assert.NotContains(t, out, "create_user")
}

func TestRunLoopReportsAndExits(t *testing.T) {
	f := newFixture("delete_client 1\nwhoami\nexit\nlist_clients\n")

	loggedOut, err := f.shell.Run(sam)
	require.NoError(t, err)
	assert.False(t, loggedOut)

	out := f.out.String()
	assert.Contains(t, out, "Permission denied.")
	assert.Contains(t, out, "sam (Support)")
	assert.Empty(t, *f.calls)
}

func TestRunLoopLogout(t *testing.T) {
	f := newFixture("logout\n")

	loggedOut, err := f.shell.Run(alice)
	require.NoError(t, err)
	assert.True(t, loggedOut)
}

func TestRunLoopStopsOnStorageFailure(t *testing.T) {
	f := newFixture("list_clients\nlist_clients\n")
	f.clients.err = shared.ErrStorageUnavailable

	_, err := f.shell.Run(alice)
	assert.ErrorIs(t, err, errReported)
	assert.Equal(t, calls{"clients.List"}, *f.calls)
	assert.Contains(t, f.out.String(), "epiccrm init")
}

func TestRunLoopEndsAtEOF(t *testing.T) {
	f := newFixture("whoami")

	loggedOut, err := f.shell.Run(alice)
	require.NoError(t, err)
	assert.False(t, loggedOut)
	assert.Contains(t, f.out.String(), "alice (Commercial)")
}

func TestMutationsAreAudited(t *testing.T) {
	f := newFixture("")
	var logs strings.Builder
	f.shell.logger = slog.New(slog.NewTextHandler(&logs, nil))
	f.shell.audit = shared.NewAuditLogger(f.shell.logger)

	require.NoError(t, f.shell.Dispatch(alice, []string{"sign_contract", "12"}))
	require.NoError(t, f.shell.Dispatch(alice, []string{"list_contracts"}))

	out := logs.String()
	assert.Equal(t, 1, strings.Count(out, "msg=audit"))
	assert.Contains(t, out, "command=sign_contract")
	assert.Contains(t, out, "target=12")
	assert.Contains(t, out, "actor=alice")
}
