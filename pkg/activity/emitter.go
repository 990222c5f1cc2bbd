package activity

import "context"

// DefaultChannel tags events that do not name a channel.
const DefaultChannel = "dashboard"

// Config toggles activity emission.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter stamps events with the configured channel and forwards them to hooks.
type Emitter struct {
	hooks Hooks
	cfg   Config
}

// NewEmitter builds an emitter. It stays disabled when no hooks are supplied.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	return &Emitter{hooks: hooks, cfg: cfg}
}

// Enabled reports whether Emit will deliver anything.
func (e *Emitter) Enabled() bool {
	return e != nil && e.cfg.Enabled && len(e.hooks) > 0
}

// Emit forwards the event when enabled.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	if evt.Channel == "" {
		evt.Channel = e.cfg.Channel
	}
	return e.hooks.Notify(ctx, evt)
}
