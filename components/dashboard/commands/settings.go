package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-metrics-dashboard/components/dashboard"
)

// SaveSettingsInput holds submitted form values. Keys may use any casing.
type SaveSettingsInput struct {
	Form   map[string][]string `json:"form"`
	Result *dashboard.Settings `json:"-"`
}

type settingsService interface {
	Apply(ctx context.Context, form map[string][]string) (dashboard.Settings, error)
}

// SaveSettingsCommand merges and stores dashboard settings.
type SaveSettingsCommand struct {
	service   settingsService
	telemetry Telemetry
}

// NewSaveSettingsCommand creates a command instance.
func NewSaveSettingsCommand(service settingsService, telemetry Telemetry) *SaveSettingsCommand {
	return &SaveSettingsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveSettingsInput] = (*SaveSettingsCommand)(nil)

func (c *SaveSettingsCommand) Execute(ctx context.Context, msg SaveSettingsInput) error {
	if c.service == nil {
		return errors.New("save settings command requires service")
	}
	saved, err := c.service.Apply(ctx, msg.Form)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = saved
	}
	c.telemetry.Record(ctx, "dashboard.command.save_settings", map[string]any{
		"theme": saved.Theme,
	})
	return nil
}
