package shared

import "strings"

// Entity identifies a kind of record guarded by the permission table.
type Entity string

// Action identifies an operation on an entity.
type Action string

// Entity kinds.
const (
	EntityClient   Entity = "client"
	EntityContract Entity = "contract"
	EntityEvent    Entity = "event"
	EntityUser     Entity = "user"
)

// Actions.
const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Seeded role names.
const (
	RoleManagement = "Management"
	RoleCommercial = "Commercial"
	RoleSupport    = "Support"
)

// Entities lists every guarded entity kind.
func Entities() []Entity {
	return []Entity{EntityClient, EntityContract, EntityEvent, EntityUser}
}

// Actions lists every action.
func Actions() []Action {
	return []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}
}

// RoleNames lists the seeded roles.
func RoleNames() []string {
	return []string{RoleManagement, RoleCommercial, RoleSupport}
}

// Valid reports whether e is a known entity kind.
func (e Entity) Valid() bool {
	switch e {
	case EntityClient, EntityContract, EntityEvent, EntityUser:
		return true
	}
	return false
}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// CanonicalRole returns the seeded spelling of a role name, matching case-insensitively.
func CanonicalRole(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, r := range RoleNames() {
		if strings.EqualFold(r, name) {
			return r, true
		}
	}
	return "", false
}
