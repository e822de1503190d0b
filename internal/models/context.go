package models

import (
	"context"
	"time"
)

type sessionContextKey struct{}

// SessionContext identifies the single active session an operation runs in.
// It only feeds log fields; session state itself is passed explicitly.
type SessionContext struct {
	SessionId string
	Tool      string // cmd that opened the session (e.g. "create")
	StartedAt time.Time
}

// WithSessionContext attaches session data to a context.
func WithSessionContext(ctx context.Context, sc *SessionContext) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sc)
}

// GetSessionContext retrieves session data from context, or nil if absent.
func GetSessionContext(ctx context.Context) *SessionContext {
	sc, _ := ctx.Value(sessionContextKey{}).(*SessionContext)
	return sc
}
