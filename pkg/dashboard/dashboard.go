package dashboard

import (
	core "github.com/goliatone/go-metrics-dashboard/components/dashboard"
	"github.com/goliatone/go-metrics-dashboard/pkg/activity"
	"github.com/goliatone/go-metrics-dashboard/pkg/activity/usersink"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// ConfigDocument re-export for convenience.
type ConfigDocument = core.ConfigDocument

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// NewFromConfig seeds an in-memory store from doc's bootstrap panels and
// returns a service that protects those panels. Store and ProtectedIDs in opts
// are overwritten. A nil doc uses the built-in defaults.
func NewFromConfig(doc *ConfigDocument, opts Options) (*Service, error) {
	if doc == nil {
		doc = core.DefaultConfig()
	}
	board, err := core.SeedBoard(doc.Panels, opts.Generator)
	if err != nil {
		return nil, err
	}
	opts.Store = core.NewInMemoryPanelStore(board)
	opts.ProtectedIDs = core.BootstrapIDs(doc.Panels)
	if opts.Notifications == (core.NotificationConfig{}) {
		opts.Notifications = doc.Notifications
	}
	return core.NewService(opts), nil
}

// WithUsersActivity forwards panel activity to a go-users activity sink and
// turns activity emission on.
func WithUsersActivity(opts Options, sink usersink.Sink) Options {
	if sink == nil {
		return opts
	}
	hooks := append(activity.Hooks(nil), opts.ActivityHooks...)
	opts.ActivityHooks = append(hooks, usersink.Hook{Sink: sink})
	opts.ActivityConfig.Enabled = true
	return opts
}
