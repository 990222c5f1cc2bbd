package commands

import (
	"context"

	dashboard "github.com/goliatone/go-metrics-dashboard/components/dashboard"
)

// Actor identifies who issued a command. Transports fill it from the
// authenticated viewer; it ends up on the emitted activity events.
type Actor struct {
	ActorID  string `json:"actor_id,omitempty"`
	UserID   string `json:"user_id,omitempty"`
	TenantID string `json:"tenant_id,omitempty"`
}

// ActorFromViewer returns the actor for an authenticated viewer.
func ActorFromViewer(viewer dashboard.ViewerContext) Actor {
	return Actor(viewer.Activity())
}

func (a Actor) bind(ctx context.Context) context.Context {
	return dashboard.ContextWithActivity(ctx, dashboard.ActivityContext(a))
}
