package shared

import "context"

type callerContextKey struct{}

// Caller identifies the acting user of a command.
type Caller struct {
	UserID   int64
	Username string
	Role     string
}

// ContextWithCaller stores the caller in context.
func ContextWithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerContextKey{}, caller)
}

// CallerFromContext extracts the caller from context.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerContextKey{}).(Caller)
	if !ok || caller.UserID == 0 {
		return Caller{}, false
	}
	return caller, true
}
