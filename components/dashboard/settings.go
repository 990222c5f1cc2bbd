package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/ettle/strcase"
)

// Choices offered by the settings form.
var (
	TimeRangeOptions  = []string{"last_30_min", "last_1_hour", "last_24_hours", "last_7_days"}
	ThemeOptions      = []string{"light", "dark", "system"}
	DateFormatOptions = []string{"MM/DD/YYYY", "DD/MM/YYYY", "YYYY-MM-DD"}
)

// Settings are the dashboard preferences edited on the settings page. They are
// held in memory only.
type Settings struct {
	DefaultTimeRange string `json:"default_time_range" yaml:"default_time_range"`
	RefreshInterval  int    `json:"refresh_interval" yaml:"refresh_interval"`
	Theme            string `json:"theme" yaml:"theme"`
	DateFormat       string `json:"date_format" yaml:"date_format"`
}

// DefaultSettings returns the initial form values.
func DefaultSettings() Settings {
	return Settings{
		DefaultTimeRange: "last_30_min",
		RefreshInterval:  30,
		Theme:            "system",
		DateFormat:       "MM/DD/YYYY",
	}
}

func (s Settings) withDefaults() Settings {
	def := DefaultSettings()
	if s.DefaultTimeRange == "" {
		s.DefaultTimeRange = def.DefaultTimeRange
	}
	if s.RefreshInterval == 0 {
		s.RefreshInterval = def.RefreshInterval
	}
	if s.Theme == "" {
		s.Theme = def.Theme
	}
	if s.DateFormat == "" {
		s.DateFormat = def.DateFormat
	}
	return s
}

// SettingsOptions configures the SettingsService.
type SettingsOptions struct {
	Defaults      Settings
	Validator     PayloadValidator
	Notifier      Notifier
	Notifications NotificationConfig
	Telemetry     Telemetry
}

// SettingsService validates and stores dashboard settings.
type SettingsService struct {
	mu      sync.RWMutex
	current Settings
	opts    SettingsOptions
}

// NewSettingsService builds a service seeded with opts.Defaults.
func NewSettingsService(opts SettingsOptions) *SettingsService {
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.Notifier == nil {
		opts.Notifier = noopNotifier{}
	}
	opts.Notifications = opts.Notifications.withDefaults()
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &SettingsService{
		current: opts.Defaults.withDefaults(),
		opts:    opts,
	}
}

// Settings returns the current values.
func (s *SettingsService) Settings(context.Context) Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Save validates and replaces the current settings.
func (s *SettingsService) Save(ctx context.Context, next Settings) error {
	if err := s.opts.Validator.Validate(SchemaSettings, next); err != nil {
		s.notify(ctx, NotificationError, "Invalid settings")
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
	s.opts.Telemetry.Record(ctx, "dashboard.settings.save", map[string]any{
		"default_time_range": next.DefaultTimeRange,
		"refresh_interval":   next.RefreshInterval,
		"theme":              next.Theme,
		"date_format":        next.DateFormat,
	})
	s.notify(ctx, NotificationSuccess, MessageSettingsSaved)
	return nil
}

// Apply merges submitted form values onto the current settings and saves
// the result.
func (s *SettingsService) Apply(ctx context.Context, form map[string][]string) (Settings, error) {
	next, err := MergeSettingsForm(s.Settings(ctx), form)
	if err != nil {
		return Settings{}, err
	}
	if err := s.Save(ctx, next); err != nil {
		return Settings{}, err
	}
	return next, nil
}

func (s *SettingsService) notify(ctx context.Context, kind NotificationKind, message string) {
	if err := s.opts.Notifier.Notify(ctx, s.opts.Notifications.Build(kind, message)); err != nil {
		s.opts.Telemetry.Record(ctx, "dashboard.notify_error", map[string]any{
			"stage":   "settings",
			"message": message,
			"error":   err.Error(),
		})
	}
}

// MergeSettingsForm overlays form values on base. Keys are accepted in any
// case style (defaultTimeRange, default-time-range, default_time_range).
// Unknown keys are ignored.
func MergeSettingsForm(base Settings, form map[string][]string) (Settings, error) {
	out := base
	for key, values := range form {
		if len(values) == 0 {
			continue
		}
		value := strings.TrimSpace(values[len(values)-1])
		switch strcase.ToSnake(key) {
		case "default_time_range":
			out.DefaultTimeRange = value
		case "refresh_interval":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("%w: refresh interval %q is not a number", ErrInvalidSettings, value)
			}
			out.RefreshInterval = n
		case "theme":
			out.Theme = value
		case "date_format":
			out.DateFormat = value
		}
	}
	return out, nil
}
