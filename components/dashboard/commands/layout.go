package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-metrics-dashboard/components/dashboard"
)

// UpdateLayoutInput carries the full layout set reported by the grid.
type UpdateLayoutInput struct {
	Layouts dashboard.Layouts `json:"layouts"`
	Actor
}

type layoutService interface {
	UpdateLayout(ctx context.Context, layouts dashboard.Layouts) error
}

// UpdateLayoutCommand replaces every breakpoint layout.
type UpdateLayoutCommand struct {
	service   layoutService
	telemetry Telemetry
}

// NewUpdateLayoutCommand creates a command instance.
func NewUpdateLayoutCommand(service layoutService, telemetry Telemetry) *UpdateLayoutCommand {
	return &UpdateLayoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateLayoutInput] = (*UpdateLayoutCommand)(nil)

func (c *UpdateLayoutCommand) Execute(ctx context.Context, msg UpdateLayoutInput) error {
	if c.service == nil {
		return errors.New("update layout command requires service")
	}
	ctx = msg.Actor.bind(ctx)
	if err := c.service.UpdateLayout(ctx, msg.Layouts); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.update_layout", map[string]any{
		"breakpoints": len(msg.Layouts),
	})
	return nil
}
