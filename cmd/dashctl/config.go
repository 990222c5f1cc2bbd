package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/goliatone/go-metrics-dashboard/components/dashboard"
)

type configCmd struct {
	Init     configInitCmd     `cmd:"" help:"Write the default dashboard config."`
	Validate configValidateCmd `cmd:"" help:"Validate a dashboard config file."`
}

type configInitCmd struct {
	Out   string `short:"o" type:"path" help:"Destination file (stdout when omitted)."`
	Force bool   `help:"Overwrite an existing file."`
}

func (cmd *configInitCmd) Run(_ context.Context, logger *zap.Logger) error {
	var buf bytes.Buffer
	if err := dashboard.WriteConfig(&buf, dashboard.DefaultConfig()); err != nil {
		return err
	}
	if cmd.Out == "" {
		_, err := io.Copy(os.Stdout, &buf)
		return err
	}
	if !cmd.Force {
		if _, err := os.Stat(cmd.Out); err == nil {
			return fmt.Errorf("dashctl: %s already exists (use --force to replace)", cmd.Out)
		}
	}
	if err := os.WriteFile(cmd.Out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("dashctl: write config: %w", err)
	}
	logger.Info("config written", zap.String("path", cmd.Out))
	return nil
}

type configValidateCmd struct {
	Path string `arg:"" type:"existingfile" help:"Config file to validate."`
}

func (cmd *configValidateCmd) Run(_ context.Context, logger *zap.Logger) error {
	doc, err := dashboard.ReadConfig(cmd.Path)
	if err != nil {
		return err
	}
	logger.Info("config valid",
		zap.String("path", doc.Source),
		zap.Int("panels", len(doc.Panels)),
		zap.Int("breakpoints", len(doc.Grid.Breakpoints)),
	)
	return nil
}
