package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-metrics-dashboard/components/dashboard"
)

type cli struct {
	LogLevel string `name:"log-level" default:"info" help:"Log level (debug, info, warn, error)."`
	Dev      bool   `help:"Use the human-friendly console encoder."`

	Serve  serveCmd  `cmd:"" help:"Serve the dashboard over HTTP."`
	Demo   demoCmd   `cmd:"" help:"Run a scripted sequence of panel operations and print the resulting board."`
	Config configCmd `cmd:"" help:"Manage dashboard configuration files."`
}

func main() {
	var root cli
	ctx := kong.Parse(&root,
		kong.Name("dashctl"),
		kong.Description("Metrics dashboard server and tooling."),
		kong.UsageOnError(),
	)
	logger, err := root.logger()
	ctx.FatalIfErrorf(err)
	defer func() { _ = logger.Sync() }()

	ctx.Bind(logger)
	ctx.BindTo(context.Background(), (*context.Context)(nil))
	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func (c *cli) logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("dashctl: %w", err)
	}
	cfg := zap.NewProductionConfig()
	if c.Dev {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = level
	return cfg.Build()
}

func loadConfig(path string) (*dashboard.ConfigDocument, error) {
	if path == "" {
		return dashboard.DefaultConfig(), nil
	}
	return dashboard.ReadConfig(path)
}
