package rbac

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/epic-events/epic-crm/internal/shared"
)

// Guard gates operations on the caller stored in context.
type Guard struct {
	Authorizer Authorizer
	Logger     *slog.Logger
}

// Require returns ErrNotAuthorized unless the context caller's role holds (entity, action).
func (g Guard) Require(ctx context.Context, entity shared.Entity, action shared.Action) error {
	caller, ok := shared.CallerFromContext(ctx)
	if !ok {
		g.logDenied("", "", entity, action, "no caller")
		return fmt.Errorf("%w: not logged in", shared.ErrNotAuthorized)
	}
	if g.Authorizer == nil || !g.Authorizer.IsAuthorized(caller.Role, entity, action) {
		g.logDenied(caller.Username, caller.Role, entity, action, "no grant")
		return fmt.Errorf("%w: %s may not %s %s", shared.ErrNotAuthorized, caller.Role, action, entity)
	}
	return nil
}

func (g Guard) logDenied(username, role string, entity shared.Entity, action shared.Action, reason string) {
	if g.Logger == nil {
		return
	}
	g.Logger.Warn("rbac denied",
		slog.String("username", username),
		slog.String("role", role),
		slog.String("entity", string(entity)),
		slog.String("action", string(action)),
		slog.String("reason", reason),
	)
}
