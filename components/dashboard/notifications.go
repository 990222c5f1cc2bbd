package dashboard

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// NotificationKind separates success toasts from error toasts.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Toast messages shown after panel transitions.
const (
	MessagePanelCreated  = "Panel created successfully"
	MessagePanelCloned   = "Panel cloned successfully"
	MessagePanelDeleted  = "Panel deleted successfully"
	MessageDeleteDefault = "Cannot delete default panels"
	MessageDeleteFailed  = "Failed to delete panel"
	MessageSettingsSaved = "Settings saved successfully"
)

const defaultToastDurationMs = 2000

// NotificationStyle is the inline style the browser applies to a toast.
type NotificationStyle struct {
	Background string `json:"background" yaml:"background"`
	Color      string `json:"color" yaml:"color"`
}

// Notification is a transient user-facing message.
type Notification struct {
	ID         string            `json:"id"`
	Kind       NotificationKind  `json:"kind"`
	Message    string            `json:"message"`
	DurationMs int               `json:"duration_ms"`
	Style      NotificationStyle `json:"style"`
}

// NotificationConfig controls toast duration and styles.
type NotificationConfig struct {
	DurationMs int               `json:"duration_ms" yaml:"duration_ms"`
	Success    NotificationStyle `json:"success" yaml:"success"`
	Error      NotificationStyle `json:"error" yaml:"error"`
}

// DefaultNotificationConfig returns 2s toasts with green/red backgrounds.
func DefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		DurationMs: defaultToastDurationMs,
		Success:    NotificationStyle{Background: "#10B981", Color: "#FFFFFF"},
		Error:      NotificationStyle{Background: "#EF4444", Color: "#FFFFFF"},
	}
}

func (c NotificationConfig) withDefaults() NotificationConfig {
	def := DefaultNotificationConfig()
	if c.DurationMs <= 0 {
		c.DurationMs = def.DurationMs
	}
	if c.Success.Background == "" {
		c.Success.Background = def.Success.Background
	}
	if c.Success.Color == "" {
		c.Success.Color = def.Success.Color
	}
	if c.Error.Background == "" {
		c.Error.Background = def.Error.Background
	}
	if c.Error.Color == "" {
		c.Error.Color = def.Error.Color
	}
	return c
}

// Build creates a notification of the given kind.
func (c NotificationConfig) Build(kind NotificationKind, message string) Notification {
	c = c.withDefaults()
	style := c.Success
	if kind == NotificationError {
		style = c.Error
	}
	return Notification{
		ID:         uuid.NewString(),
		Kind:       kind,
		Message:    message,
		DurationMs: c.DurationMs,
		Style:      style,
	}
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, Notification) error { return nil }

// NotificationRecorder keeps every notification it receives.
type NotificationRecorder struct {
	mu    sync.Mutex
	items []Notification
}

// Notify appends n.
func (r *NotificationRecorder) Notify(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
	return nil
}

// Notifications returns a copy of what was recorded so far.
func (r *NotificationRecorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Notifiers fans out to every notifier and returns the first error.
type Notifiers []Notifier

// Notify satisfies Notifier.
func (ns Notifiers) Notify(ctx context.Context, n Notification) error {
	var first error
	for _, notifier := range ns {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, n); err != nil && first == nil {
			first = err
		}
	}
	return first
}
