package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-metrics-dashboard/components/dashboard"
)

// PanelResult carries the id of a panel produced by a command.
type PanelResult struct {
	ID string `json:"id"`
}

// CreatePanelInput wraps the create request. Result is filled on success when
// non-nil.
type CreatePanelInput struct {
	dashboard.CreatePanelRequest
	Actor
	Result *PanelResult `json:"-"`
}

type createService interface {
	CreatePanel(ctx context.Context, req dashboard.CreatePanelRequest) (string, error)
}

// CreatePanelCommand adds a panel through the dashboard service.
type CreatePanelCommand struct {
	service   createService
	telemetry Telemetry
}

// NewCreatePanelCommand creates a command instance.
func NewCreatePanelCommand(service createService, telemetry Telemetry) *CreatePanelCommand {
	return &CreatePanelCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreatePanelInput] = (*CreatePanelCommand)(nil)

// Execute delegates to the dashboard service.
func (c *CreatePanelCommand) Execute(ctx context.Context, msg CreatePanelInput) error {
	if c.service == nil {
		return errors.New("create panel command requires service")
	}
	ctx = msg.Actor.bind(ctx)
	id, err := c.service.CreatePanel(ctx, msg.CreatePanelRequest)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		msg.Result.ID = id
	}
	c.telemetry.Record(ctx, "dashboard.command.create_panel", map[string]any{
		"panel_id": id,
		"type":     string(msg.Type),
	})
	return nil
}
