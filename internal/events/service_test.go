package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epic-events/epic-crm/internal/contracts"
	"github.com/epic-events/epic-crm/internal/shared"
	"github.com/epic-events/epic-crm/internal/users"
)

// ============================================================================
// MOCKS
// ============================================================================

type mockRepository struct {
	events map[int64]*Event
	nextID int64

	// Error injection
	txError     error
	updateCalls int
}

func newMockRepository() *mockRepository {
	return &mockRepository{events: make(map[int64]*Event), nextID: 1}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	if m.txError != nil {
		return m.txError
	}
	return fn(ctx, &mockTxRepo{mock: m})
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) ([]Event, error) {
	var out []Event
	for id := int64(1); id < m.nextID; id++ {
		e, ok := m.events[id]
		if !ok {
			continue
		}
		if filter.Unassigned && e.SupportContactID != nil {
			continue
		}
		if filter.SupportContactID != nil && (e.SupportContactID == nil || *e.SupportContactID != *filter.SupportContactID) {
			continue
		}
		if filter.ContractID != nil && e.ContractID != *filter.ContractID {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

type mockTxRepo struct {
	mock *mockRepository
}

func (t *mockTxRepo) Create(ctx context.Context, event Event) (int64, error) {
	event.ID = t.mock.nextID
	t.mock.nextID++
	t.mock.events[event.ID] = &event
	return event.ID, nil
}

func (t *mockTxRepo) Update(ctx context.Context, id int64, changes Changes) error {
	t.mock.updateCalls++
	e, ok := t.mock.events[id]
	if !ok {
		return shared.ErrNotFound
	}
	if changes.EventDateStart != nil {
		e.EventDateStart = *changes.EventDateStart
	}
	if changes.EventDateEnd != nil {
		e.EventDateEnd = *changes.EventDateEnd
	}
	if changes.Location != nil {
		e.Location = *changes.Location
	}
	if changes.Attendees != nil {
		e.Attendees = *changes.Attendees
	}
	if changes.Notes != nil {
		e.Notes = *changes.Notes
	}
	if changes.SupportContactID != nil {
		id := *changes.SupportContactID
		e.SupportContactID = &id
	}
	return nil
}

func (t *mockTxRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := t.mock.events[id]; !ok {
		return shared.ErrNotFound
	}
	delete(t.mock.events, id)
	return nil
}

type stubContracts map[int64]*contracts.Contract

func (s stubContracts) Get(ctx context.Context, id int64) (*contracts.Contract, error) {
	c, ok := s[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

type stubUsers map[int64]*users.User

func (s stubUsers) Get(ctx context.Context, id int64) (*users.User, error) {
	u, ok := s[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func newTestService() (*Service, *mockRepository) {
	repo := newMockRepository()
	cs := stubContracts{
		1: {ID: 1, Status: contracts.StatusSigned},
		2: {ID: 2, Status: contracts.StatusNotSigned},
	}
	us := stubUsers{
		10: {ID: 10, Username: "sam", Role: shared.RoleSupport},
		11: {ID: 11, Username: "carla", Role: shared.RoleCommercial},
	}
	return NewService(repo, cs, us), repo
}

var (
	jun1 = time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)
	jun2 = time.Date(2026, 6, 2, 2, 0, 0, 0, time.UTC)
)

func validRequest() CreateEventRequest {
	return CreateEventRequest{
		ContractID:     1,
		EventDateStart: jun1,
		EventDateEnd:   jun2,
		Location:       "53 Rue du Château, Candé-sur-Beuvron",
		Attendees:      75,
		Notes:          "Wedding reception",
	}
}

// ============================================================================
// CREATE
// ============================================================================

func TestCreateEventUnassigned(t *testing.T) {
	svc, _ := newTestService()

	e, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.ID)
	assert.Nil(t, e.SupportContactID)
	assert.Equal(t, 75, e.Attendees)
}

func TestCreateEventRequiresSignedContract(t *testing.T) {
	svc, repo := newTestService()
	req := validRequest()
	req.ContractID = 2

	_, err := svc.Create(context.Background(), req)

	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "contract_id", verr.Field)
	assert.Empty(t, repo.events)
}

func TestCreateEventUnknownContract(t *testing.T) {
	svc, _ := newTestService()
	req := validRequest()
	req.ContractID = 99

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateEventValidation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*CreateEventRequest)
		field string
	}{
		{"end before start", func(r *CreateEventRequest) { r.EventDateEnd = jun1.Add(-time.Hour) }, "event_date_end"},
		{"negative attendees", func(r *CreateEventRequest) { r.Attendees = -1 }, "attendees"},
		{"missing location", func(r *CreateEventRequest) { r.Location = "" }, "location"},
		{"missing contract", func(r *CreateEventRequest) { r.ContractID = 0 }, "contract_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()
			req := validRequest()
			tt.edit(&req)

			_, err := svc.Create(context.Background(), req)

			var verr *shared.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCreateEventSameStartAndEnd(t *testing.T) {
	svc, _ := newTestService()
	req := validRequest()
	req.EventDateEnd = req.EventDateStart

	_, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestCreateEventTxError(t *testing.T) {
	svc, repo := newTestService()
	repo.txError = shared.ErrStorageUnavailable

	_, err := svc.Create(context.Background(), validRequest())
	assert.ErrorIs(t, err, shared.ErrStorageUnavailable)
}

// ============================================================================
// UPDATE
// ============================================================================

func TestUpdateEventChangesOnlyGivenFields(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	attendees := 120
	e, err := svc.Update(context.Background(), 1, UpdateEventRequest{Attendees: &attendees})
	require.NoError(t, err)
	assert.Equal(t, 120, e.Attendees)
	assert.Equal(t, "Wedding reception", e.Notes)
}

func TestUpdateEventMergedDatesChecked(t *testing.T) {
	svc, repo := newTestService()
	_, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	start := jun2.Add(time.Hour)
	_, err = svc.Update(context.Background(), 1, UpdateEventRequest{EventDateStart: &start})

	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "event_date_end", verr.Field)
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateEventNoChangesSkipsWrite(t *testing.T) {
	svc, repo := newTestService()
	_, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	location := validRequest().Location
	_, err = svc.Update(context.Background(), 1, UpdateEventRequest{Location: &location})
	require.NoError(t, err)
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateEventNotFound(t *testing.T) {
	svc, _ := newTestService()
	notes := "x"

	_, err := svc.Update(context.Background(), 42, UpdateEventRequest{Notes: &notes})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

// ============================================================================
// ASSIGN SUPPORT
// ============================================================================

func TestAssignSupport(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	e, err := svc.AssignSupport(context.Background(), 1, 10)
	require.NoError(t, err)
	require.NotNil(t, e.SupportContactID)
	assert.Equal(t, int64(10), *e.SupportContactID)
}

func TestAssignSupportRejectsOtherRoles(t *testing.T) {
	svc, repo := newTestService()
	_, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = svc.AssignSupport(context.Background(), 1, 11)

	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "support_contact_id", verr.Field)
	assert.Nil(t, repo.events[1].SupportContactID)
}

func TestAssignSupportUnknownUser(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = svc.AssignSupport(context.Background(), 1, 404)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAssignSupportUnknownEvent(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AssignSupport(context.Background(), 7, 10)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

// ============================================================================
// LIST / DELETE
// ============================================================================

func TestListEventFilters(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		req := validRequest()
		req.EventDateStart = jun1.AddDate(0, 0, i)
		req.EventDateEnd = jun2.AddDate(0, 0, i)
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}
	_, err := svc.AssignSupport(ctx, 2, 10)
	require.NoError(t, err)

	unassigned, err := svc.List(ctx, ListFilter{Unassigned: true})
	require.NoError(t, err)
	assert.Len(t, unassigned, 2)

	support := int64(10)
	mine, err := svc.List(ctx, ListFilter{SupportContactID: &support})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(2), mine[0].ID)
}

func TestDeleteEvent(t *testing.T) {
	svc, repo := newTestService()
	_, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Empty(t, repo.events)

	err = svc.Delete(context.Background(), 1)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
