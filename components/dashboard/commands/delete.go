package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// DeletePanelInput identifies the panel to remove.
type DeletePanelInput struct {
	PanelID string `json:"panel_id"`
	Actor
}

type deleteService interface {
	DeletePanel(ctx context.Context, id string) error
}

// DeletePanelCommand removes a panel from every layout.
type DeletePanelCommand struct {
	service   deleteService
	telemetry Telemetry
}

// NewDeletePanelCommand creates a command instance.
func NewDeletePanelCommand(service deleteService, telemetry Telemetry) *DeletePanelCommand {
	return &DeletePanelCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeletePanelInput] = (*DeletePanelCommand)(nil)

func (c *DeletePanelCommand) Execute(ctx context.Context, msg DeletePanelInput) error {
	if c.service == nil {
		return errors.New("delete panel command requires service")
	}
	ctx = msg.Actor.bind(ctx)
	if err := c.service.DeletePanel(ctx, msg.PanelID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.delete_panel", map[string]any{
		"panel_id": msg.PanelID,
	})
	return nil
}
