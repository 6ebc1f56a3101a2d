package rbac

import (
	"fmt"

	"github.com/epic-events/epic-crm/internal/shared"
)

// Grant allows a role to perform an action on an entity kind.
type Grant struct {
	Role   string
	Entity shared.Entity
	Action shared.Action
}

func (g Grant) String() string {
	return fmt.Sprintf("%s:%s:%s", g.Role, g.Entity, g.Action)
}

type grantKey struct {
	role   string
	entity shared.Entity
	action shared.Action
}

func (g Grant) key() grantKey {
	return grantKey{role: g.Role, entity: g.Entity, action: g.Action}
}

// Authorizer answers permission checks.
type Authorizer interface {
	IsAuthorized(role string, entity shared.Entity, action shared.Action) bool
}
