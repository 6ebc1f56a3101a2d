package rbac

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epic-events/epic-crm/internal/shared"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type mockRepository struct {
	grants []Grant
	roles  map[string]bool

	// Error injection
	listError   error
	txError     error
	insertError error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		roles: map[string]bool{
			shared.RoleManagement: true,
			shared.RoleCommercial: true,
			shared.RoleSupport:    true,
		},
	}
}

func (m *mockRepository) ListGrants(ctx context.Context) ([]Grant, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	out := make([]Grant, len(m.grants))
	copy(out, m.grants)
	return out, nil
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	if m.txError != nil {
		return m.txError
	}
	staged := &mockTxRepo{mock: m, grants: append([]Grant(nil), m.grants...)}
	if err := fn(ctx, staged); err != nil {
		return err
	}
	m.grants = staged.grants
	return nil
}

type mockTxRepo struct {
	mock   *mockRepository
	grants []Grant
}

func (tx *mockTxRepo) DeleteAllGrants(ctx context.Context) error {
	tx.grants = nil
	return nil
}

func (tx *mockTxRepo) InsertGrant(ctx context.Context, g Grant) error {
	if tx.mock.insertError != nil {
		return tx.mock.insertError
	}
	if !tx.mock.roles[g.Role] {
		return shared.ErrNotFound
	}
	tx.grants = append(tx.grants, g)
	return nil
}

// ============================================================================
// TESTS
// ============================================================================

func TestServiceDeniesBeforeLoad(t *testing.T) {
	svc := NewService(newMockRepository(), nil)
	assert.False(t, svc.IsAuthorized(shared.RoleManagement, shared.EntityClient, shared.ActionRead))
}

func TestServiceDefaultGrantTable(t *testing.T) {
	repo := newMockRepository()
	repo.grants = DefaultGrants()
	svc := NewService(repo, nil)
	require.NoError(t, svc.Load(context.Background()))

	expected := map[string]map[shared.Entity]string{
		shared.RoleManagement: {shared.EntityClient: "CRUD", shared.EntityContract: "CRUD", shared.EntityEvent: "CRUD", shared.EntityUser: "CRUD"},
		shared.RoleCommercial: {shared.EntityClient: "CRU", shared.EntityContract: "CRU", shared.EntityEvent: "CR"},
		shared.RoleSupport:    {shared.EntityClient: "R", shared.EntityContract: "R", shared.EntityEvent: "RU"},
	}
	letters := map[shared.Action]string{
		shared.ActionCreate: "C",
		shared.ActionRead:   "R",
		shared.ActionUpdate: "U",
		shared.ActionDelete: "D",
	}

	for _, role := range shared.RoleNames() {
		for _, entity := range shared.Entities() {
			for _, action := range shared.Actions() {
				want := containsLetter(expected[role][entity], letters[action])
				assert.Equal(t, want, svc.IsAuthorized(role, entity, action), "%s %s %s", role, entity, action)
			}
		}
	}
}

func TestServiceFailsClosedOnUnknownInputs(t *testing.T) {
	repo := newMockRepository()
	repo.grants = DefaultGrants()
	svc := NewService(repo, nil)
	require.NoError(t, svc.Load(context.Background()))

	assert.False(t, svc.IsAuthorized("Intern", shared.EntityClient, shared.ActionRead))
	assert.False(t, svc.IsAuthorized(shared.RoleManagement, shared.Entity("invoice"), shared.ActionRead))
	assert.False(t, svc.IsAuthorized(shared.RoleManagement, shared.EntityClient, shared.Action("archive")))
	assert.False(t, svc.IsAuthorized("", "", ""))
}

func TestServiceLoadError(t *testing.T) {
	repo := newMockRepository()
	repo.listError = shared.ErrStorageUnavailable
	svc := NewService(repo, nil)

	err := svc.Load(context.Background())
	assert.ErrorIs(t, err, shared.ErrStorageUnavailable)
}

func TestServiceReseedRestoresDefaults(t *testing.T) {
	repo := newMockRepository()
	repo.grants = []Grant{{Role: shared.RoleSupport, Entity: shared.EntityUser, Action: shared.ActionDelete}}
	svc := NewService(repo, nil)
	require.NoError(t, svc.Load(context.Background()))
	require.True(t, svc.IsAuthorized(shared.RoleSupport, shared.EntityUser, shared.ActionDelete))

	require.NoError(t, svc.Reseed(context.Background()))

	assert.False(t, svc.IsAuthorized(shared.RoleSupport, shared.EntityUser, shared.ActionDelete))
	assert.True(t, svc.IsAuthorized(shared.RoleSupport, shared.EntityEvent, shared.ActionUpdate))
	assert.Len(t, svc.Grants(), len(DefaultGrants()))
}

func TestServiceReseedRollsBackOnInsertFailure(t *testing.T) {
	repo := newMockRepository()
	original := []Grant{{Role: shared.RoleCommercial, Entity: shared.EntityClient, Action: shared.ActionRead}}
	repo.grants = original
	repo.insertError = errors.New("disk full")
	svc := NewService(repo, nil)

	err := svc.Reseed(context.Background())
	require.Error(t, err)
	assert.Equal(t, original, repo.grants)
}

func TestServiceEnsureSeeded(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)

	seeded, err := svc.EnsureSeeded(context.Background())
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = svc.EnsureSeeded(context.Background())
	require.NoError(t, err)
	assert.False(t, seeded)
}

func TestMatrixDropsInvalidAndDuplicateGrants(t *testing.T) {
	m := NewMatrix([]Grant{
		{Role: shared.RoleSupport, Entity: shared.EntityEvent, Action: shared.ActionRead},
		{Role: shared.RoleSupport, Entity: shared.EntityEvent, Action: shared.ActionRead},
		{Role: shared.RoleSupport, Entity: "invoice", Action: shared.ActionRead},
		{Role: "", Entity: shared.EntityEvent, Action: shared.ActionRead},
	})
	assert.Equal(t, 1, m.Len())

	var nilMatrix *Matrix
	assert.False(t, nilMatrix.Allows(shared.RoleManagement, shared.EntityClient, shared.ActionRead))
}

func containsLetter(set, letter string) bool {
	for _, r := range set {
		if string(r) == letter {
			return true
		}
	}
	return false
}
