package rbac

import "github.com/epic-events/epic-crm/internal/shared"

// DefaultGrants returns the authoritative role grant table.
//
//	Role        client  contract  event  user
//	Management  CRUD    CRUD      CRUD   CRUD
//	Commercial  CRU     CRU       CR     -
//	Support     R       R         RU     -
func DefaultGrants() []Grant {
	var grants []Grant
	add := func(role string, entity shared.Entity, actions ...shared.Action) {
		for _, a := range actions {
			grants = append(grants, Grant{Role: role, Entity: entity, Action: a})
		}
	}

	for _, e := range shared.Entities() {
		add(shared.RoleManagement, e, shared.Actions()...)
	}

	add(shared.RoleCommercial, shared.EntityClient, shared.ActionCreate, shared.ActionRead, shared.ActionUpdate)
	add(shared.RoleCommercial, shared.EntityContract, shared.ActionCreate, shared.ActionRead, shared.ActionUpdate)
	add(shared.RoleCommercial, shared.EntityEvent, shared.ActionCreate, shared.ActionRead)

	add(shared.RoleSupport, shared.EntityClient, shared.ActionRead)
	add(shared.RoleSupport, shared.EntityContract, shared.ActionRead)
	add(shared.RoleSupport, shared.EntityEvent, shared.ActionRead, shared.ActionUpdate)

	return grants
}
