package auth

import (
	"context"

	"github.com/fieldops/opsconsole/internal/ui/session"
)

// Common context keys - use a struct to prevent conflicts
type contextKey struct {
	name string
}

var (
	sessionKey = contextKey{"session"}
	storeKey   = contextKey{"session-store"}
)

func ContextWithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// ContextSession returns the session loaded by RequireAuth
func ContextSession(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*session.Session)
	return s, ok
}

func ContextWithStore(ctx context.Context, store session.Store) context.Context {
	return context.WithValue(ctx, storeKey, store)
}

func ContextStore(ctx context.Context) (session.Store, bool) {
	store, ok := ctx.Value(storeKey).(session.Store)
	return store, ok
}
