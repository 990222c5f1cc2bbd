package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"go.uber.org/zap"

	"github.com/goliatone/go-metrics-dashboard/components/dashboard"
	"github.com/goliatone/go-metrics-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-metrics-dashboard/components/dashboard/gorouter"
	"github.com/goliatone/go-metrics-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-metrics-dashboard/components/dashboard/queries"
	"github.com/goliatone/go-metrics-dashboard/pkg/activity"
	"github.com/goliatone/go-metrics-dashboard/pkg/analytics"
	dashboardpkg "github.com/goliatone/go-metrics-dashboard/pkg/dashboard"
)

type serveCmd struct {
	Addr        string        `default:":9876" help:"Listen address."`
	ConfigPath  string        `name:"config" type:"existingfile" help:"Dashboard YAML config (defaults are used when omitted)."`
	BasePath    string        `name:"base-path" default:"/admin" help:"Mount point for dashboard routes."`
	ChartCache  time.Duration `name:"chart-cache" default:"1m" help:"Rendered chart TTL (0 disables caching)."`
	FeedSize    int           `name:"feed-size" default:"50" help:"Recent activity entries kept in memory."`
	ShutdownTTL time.Duration `name:"shutdown-timeout" default:"5s" help:"Grace period for in-flight requests."`
	MetricsURL  string        `name:"metrics-url" env:"DASHCTL_METRICS_URL" help:"Analytics endpoint serving /series and /count (generated data when omitted)."`
	MetricsKey  string        `name:"metrics-key" env:"DASHCTL_METRICS_KEY" help:"Bearer token for the analytics endpoint."`
	OTLP        string        `name:"otlp-endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" help:"OTLP/HTTP collector host:port (tracing disabled when omitted)."`
	OTLPSecure  bool          `name:"otlp-secure" help:"Use TLS for the OTLP exporter."`
	ServiceName string        `name:"service-name" env:"OTEL_SERVICE_NAME" default:"dashctl" help:"Service name reported with spans."`
}

func (cmd *serveCmd) Run(ctx context.Context, logger *zap.Logger) error {
	doc, err := loadConfig(cmd.ConfigPath)
	if err != nil {
		return err
	}
	provider, err := newTracerProvider(ctx, cmd.OTLP, cmd.ServiceName, !cmd.OTLPSecure)
	if err != nil {
		return err
	}
	var telemetry dashboard.Telemetry = dashboard.NewZapTelemetry(logger)
	if provider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cmd.ShutdownTTL)
			defer cancel()
			if err := provider.Shutdown(shutdownCtx); err != nil {
				logger.Warn("tracer shutdown", zap.Error(err))
			}
		}()
		telemetry = dashboard.Telemetries{
			telemetry,
			dashboard.NewOTelTelemetry(provider.Tracer(tracerName)),
		}
		logger.Info("tracing enabled", zap.String("endpoint", cmd.OTLP))
	}
	broadcast := dashboard.NewBroadcastHook()
	feed := dashboard.NewActivityFeed(cmd.FeedSize)
	refresh := dashboard.RefreshHooks{broadcast}
	var cache dashboard.RenderCache
	if cmd.ChartCache > 0 {
		chartCache := dashboard.NewChartCache(cmd.ChartCache)
		refresh = append(refresh, chartCache)
		cache = chartCache
		janitorCtx, stopJanitor := context.WithCancel(ctx)
		defer stopJanitor()
		go chartCache.Run(janitorCtx, cmd.ChartCache)
	}

	generator, err := cmd.generator(telemetry)
	if err != nil {
		return err
	}

	service, err := dashboardpkg.NewFromConfig(doc, dashboardpkg.Options{
		Generator:      generator,
		Notifier:       broadcast,
		RefreshHook:    refresh,
		Telemetry:      telemetry,
		ActivityHooks:  activity.Hooks{feed},
		ActivityConfig: activity.Config{Enabled: true},
	})
	if err != nil {
		return err
	}
	settings := dashboard.NewSettingsService(dashboard.SettingsOptions{
		Defaults:      doc.Settings,
		Notifier:      broadcast,
		Notifications: doc.Notifications,
		Telemetry:     telemetry,
	})

	renderer, err := dashboard.NewTemplateRenderer()
	if err != nil {
		return err
	}
	charts := dashboard.NewEChartsRenderer(dashboard.WithChartCache(cache))
	panels := dashboard.NewPanelRenderer(charts,
		dashboard.WithProtectedCheck(service.IsProtected),
		dashboard.WithDescriptionRenderer(dashboard.NewMarkdownDescriptions()),
	)
	controller := dashboard.NewController(dashboard.ControllerOptions{
		Service:  service,
		Settings: settings,
		Panels:   panels,
		Renderer: renderer,
		Grid:     doc.Grid,
		BasePath: cmd.BasePath,
	})

	executor := &httpapi.CommandExecutor{
		CreateCommander:   commands.NewCreatePanelCommand(service, telemetry),
		CloneCommander:    commands.NewClonePanelCommand(service, telemetry),
		DeleteCommander:   commands.NewDeletePanelCommand(service, telemetry),
		LayoutCommander:   commands.NewUpdateLayoutCommand(service, telemetry),
		SettingsCommander: commands.NewSaveSettingsCommand(settings, telemetry),
	}

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: controller,
		API:        executor,
		Broadcast:  broadcast,
		Activity:   queries.NewActivityQuery(feed),
		Panel:      queries.NewPanelQuery(service),
		BasePath:   cmd.BasePath,
	}); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dashboard listening",
			zap.String("addr", cmd.Addr),
			zap.String("url", cmd.BasePath+"/dashboard"),
			zap.Int("panels", len(doc.Panels)),
		)
		errCh <- server.Serve(cmd.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down", zap.Duration("timeout", cmd.ShutdownTTL))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cmd.ShutdownTTL)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func (cmd *serveCmd) generator(telemetry dashboard.Telemetry) (dashboard.MetricGenerator, error) {
	if cmd.MetricsURL == "" {
		return dashboard.NewRandomMetricGenerator(), nil
	}
	client, err := analytics.NewHTTPClient(analytics.HTTPConfig{BaseURL: cmd.MetricsURL, APIKey: cmd.MetricsKey})
	if err != nil {
		return nil, err
	}
	return analytics.NewGenerator(client, analytics.GeneratorOptions{Telemetry: telemetry}), nil
}

