package dashboard

import (
	"context"
	"strings"
)

// ActivityContext identifies who triggered a panel transition. It travels on
// the request context from the transport into the activity events.
type ActivityContext struct {
	ActorID  string `json:"actor_id,omitempty"`
	UserID   string `json:"user_id,omitempty"`
	TenantID string `json:"tenant_id,omitempty"`
}

// IsZero reports whether no identifier is set.
func (a ActivityContext) IsZero() bool {
	return a.ActorID == "" && a.UserID == "" && a.TenantID == ""
}

// normalized trims identifiers and falls back to the user as actor.
func (a ActivityContext) normalized() ActivityContext {
	a.ActorID = strings.TrimSpace(a.ActorID)
	a.UserID = strings.TrimSpace(a.UserID)
	a.TenantID = strings.TrimSpace(a.TenantID)
	if a.ActorID == "" {
		a.ActorID = a.UserID
	}
	return a
}

// Activity returns the actor identity of the viewer.
func (v ViewerContext) Activity() ActivityContext {
	return ActivityContext{UserID: v.UserID, TenantID: v.TenantID}.normalized()
}

type activityContextKey struct{}

// ContextWithActivity stores the actor on ctx. An empty actor leaves ctx
// untouched so an outer value survives.
func ContextWithActivity(ctx context.Context, meta ActivityContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	meta = meta.normalized()
	if meta.IsZero() {
		return ctx
	}
	return context.WithValue(ctx, activityContextKey{}, meta)
}

// ActivityFromContext returns the actor stored on ctx, if any.
func ActivityFromContext(ctx context.Context) (ActivityContext, bool) {
	if ctx == nil {
		return ActivityContext{}, false
	}
	meta, ok := ctx.Value(activityContextKey{}).(ActivityContext)
	return meta, ok
}

func activityContextFrom(ctx context.Context) ActivityContext {
	meta, _ := ActivityFromContext(ctx)
	return meta
}
