package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// ClonePanelInput names the panel to copy.
type ClonePanelInput struct {
	PanelID string `json:"panel_id"`
	Actor
	Result *PanelResult `json:"-"`
}

type cloneService interface {
	ClonePanel(ctx context.Context, sourceID string) (string, error)
}

// ClonePanelCommand duplicates a panel below the current layout.
type ClonePanelCommand struct {
	service   cloneService
	telemetry Telemetry
}

// NewClonePanelCommand creates a command instance.
func NewClonePanelCommand(service cloneService, telemetry Telemetry) *ClonePanelCommand {
	return &ClonePanelCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ClonePanelInput] = (*ClonePanelCommand)(nil)

func (c *ClonePanelCommand) Execute(ctx context.Context, msg ClonePanelInput) error {
	if c.service == nil {
		return errors.New("clone panel command requires service")
	}
	ctx = msg.Actor.bind(ctx)
	id, err := c.service.ClonePanel(ctx, msg.PanelID)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		msg.Result.ID = id
	}
	c.telemetry.Record(ctx, "dashboard.command.clone_panel", map[string]any{
		"panel_id":  id,
		"source_id": msg.PanelID,
	})
	return nil
}
