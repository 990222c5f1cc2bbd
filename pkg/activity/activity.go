package activity

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// Event describes a panel lifecycle action for audit/activity consumers.
type Event struct {
	Verb           string
	ActorID        string
	UserID         string
	TenantID       string
	ObjectType     string
	ObjectID       string
	Channel        string
	DefinitionCode string
	Recipients     []string
	Metadata       map[string]any
	OccurredAt     time.Time
}

// Hook receives activity events.
type Hook interface {
	Notify(ctx context.Context, evt Event) error
}

// HookFunc adapts a function into a Hook.
type HookFunc func(ctx context.Context, evt Event) error

// Notify calls f.
func (f HookFunc) Notify(ctx context.Context, evt Event) error {
	if f == nil {
		return nil
	}
	return f(ctx, evt)
}

// Hooks fans an event out to every registered hook. Events without a verb are
// dropped.
type Hooks []Hook

// Notify normalizes the event and delivers it to each hook, joining failures.
func (h Hooks) Notify(ctx context.Context, evt Event) error {
	evt = NormalizeEvent(evt)
	if evt.Verb == "" {
		return nil
	}
	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NormalizeEvent trims identifiers and returns a copy whose slices and maps
// are not shared with the input.
func NormalizeEvent(evt Event) Event {
	out := evt
	out.Verb = strings.TrimSpace(evt.Verb)
	out.ActorID = strings.TrimSpace(evt.ActorID)
	out.UserID = strings.TrimSpace(evt.UserID)
	out.TenantID = strings.TrimSpace(evt.TenantID)
	out.ObjectType = strings.TrimSpace(evt.ObjectType)
	out.ObjectID = strings.TrimSpace(evt.ObjectID)
	out.Channel = strings.TrimSpace(evt.Channel)
	out.DefinitionCode = strings.TrimSpace(evt.DefinitionCode)
	if evt.Recipients != nil {
		out.Recipients = append([]string(nil), evt.Recipients...)
	}
	if evt.Metadata != nil {
		out.Metadata = make(map[string]any, len(evt.Metadata))
		for k, v := range evt.Metadata {
			out.Metadata[k] = v
		}
	}
	if out.OccurredAt.IsZero() {
		out.OccurredAt = time.Now().UTC()
	}
	return out
}

// CaptureHook stores every event it receives. Useful in tests and demos.
type CaptureHook struct {
	mu     sync.Mutex
	Events []Event
}

// Notify records the event.
func (c *CaptureHook) Notify(_ context.Context, evt Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Events = append(c.Events, evt)
	return nil
}
