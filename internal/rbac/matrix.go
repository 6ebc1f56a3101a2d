package rbac

import (
	"sort"

	"github.com/epic-events/epic-crm/internal/shared"
)

// Matrix is an immutable set of grants.
type Matrix struct {
	set    map[grantKey]struct{}
	grants []Grant
}

// NewMatrix builds a Matrix, dropping duplicates and grants with unknown entity or action.
func NewMatrix(grants []Grant) *Matrix {
	m := &Matrix{set: make(map[grantKey]struct{}, len(grants))}
	for _, g := range grants {
		if g.Role == "" || !g.Entity.Valid() || !g.Action.Valid() {
			continue
		}
		if _, dup := m.set[g.key()]; dup {
			continue
		}
		m.set[g.key()] = struct{}{}
		m.grants = append(m.grants, g)
	}
	sort.Slice(m.grants, func(i, j int) bool {
		a, b := m.grants[i], m.grants[j]
		if a.Role != b.Role {
			return a.Role < b.Role
		}
		if a.Entity != b.Entity {
			return a.Entity < b.Entity
		}
		return actionOrder(a.Action) < actionOrder(b.Action)
	})
	return m
}

// Allows reports whether the grant exists. A nil Matrix allows nothing.
func (m *Matrix) Allows(role string, entity shared.Entity, action shared.Action) bool {
	if m == nil {
		return false
	}
	_, ok := m.set[grantKey{role: role, entity: entity, action: action}]
	return ok
}

// Grants returns a copy of the grants in role, entity, action order.
func (m *Matrix) Grants() []Grant {
	if m == nil {
		return nil
	}
	out := make([]Grant, len(m.grants))
	copy(out, m.grants)
	return out
}

// Len returns the number of distinct grants.
func (m *Matrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.grants)
}

func actionOrder(a shared.Action) int {
	for i, candidate := range shared.Actions() {
		if candidate == a {
			return i
		}
	}
	return len(shared.Actions())
}

// IsAuthorized implements Authorizer.
func (m *Matrix) IsAuthorized(role string, entity shared.Entity, action shared.Action) bool {
	return m.Allows(role, entity, action)
}
