package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-metrics-dashboard/components/dashboard/commands"
)

var errCommanderMissing = errors.New("httpapi: commander not configured")

// Executor is the transport-facing view of the dashboard commands.
type Executor interface {
	CreatePanel(ctx context.Context, input commands.CreatePanelInput) error
	ClonePanel(ctx context.Context, input commands.ClonePanelInput) error
	DeletePanel(ctx context.Context, input commands.DeletePanelInput) error
	UpdateLayout(ctx context.Context, input commands.UpdateLayoutInput) error
	SaveSettings(ctx context.Context, input commands.SaveSettingsInput) error
}

// CommandExecutor routes Executor calls to go-command Commanders.
type CommandExecutor struct {
	CreateCommander   gocommand.Commander[commands.CreatePanelInput]
	CloneCommander    gocommand.Commander[commands.ClonePanelInput]
	DeleteCommander   gocommand.Commander[commands.DeletePanelInput]
	LayoutCommander   gocommand.Commander[commands.UpdateLayoutInput]
	SettingsCommander gocommand.Commander[commands.SaveSettingsInput]
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) CreatePanel(ctx context.Context, input commands.CreatePanelInput) error {
	return execute(ctx, e.CreateCommander, input)
}

func (e *CommandExecutor) ClonePanel(ctx context.Context, input commands.ClonePanelInput) error {
	return execute(ctx, e.CloneCommander, input)
}

func (e *CommandExecutor) DeletePanel(ctx context.Context, input commands.DeletePanelInput) error {
	return execute(ctx, e.DeleteCommander, input)
}

func (e *CommandExecutor) UpdateLayout(ctx context.Context, input commands.UpdateLayoutInput) error {
	return execute(ctx, e.LayoutCommander, input)
}

func (e *CommandExecutor) SaveSettings(ctx context.Context, input commands.SaveSettingsInput) error {
	return execute(ctx, e.SettingsCommander, input)
}

func execute[T any](ctx context.Context, cmd gocommand.Commander[T], msg T) error {
	if cmd == nil {
		return errCommanderMissing
	}
	return cmd.Execute(ctx, msg)
}
