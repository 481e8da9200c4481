package internal

import (
	"context"
	"time"
)

type ctxKey string

const (
	ContextActorKey   ctxKey = "actor"
	ContextSessionKey ctxKey = "session"
)

// Actor is the identity recorded against mutating ledger operations.
type Actor struct {
	UserID   int64
	Username string
	Role     string
}

func (a Actor) IsZero() bool {
	return a.UserID == 0
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	actor, ok := ctx.Value(ContextActorKey).(Actor)
	if !ok || actor.IsZero() {
		return Actor{}, false
	}
	return actor, true
}

func ContextWithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, ContextActorKey, actor)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
