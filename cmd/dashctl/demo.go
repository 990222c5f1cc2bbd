package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-metrics-dashboard/components/dashboard"
	dashboardpkg "github.com/goliatone/go-metrics-dashboard/pkg/dashboard"
)

type demoCmd struct {
	ConfigPath string `name:"config" type:"existingfile" help:"Dashboard YAML config (defaults are used when omitted)."`
	Seed       uint64 `help:"Seed for panel ids and generated data (0 picks a random seed)."`
}

type demoStep struct {
	Op            string   `yaml:"op"`
	Panel         string   `yaml:"panel,omitempty"`
	Result        string   `yaml:"result,omitempty"`
	Error         string   `yaml:"error,omitempty"`
	Notifications []string `yaml:"notifications,omitempty"`
}

type demoPanel struct {
	ID          string                `yaml:"id"`
	Type        dashboard.PanelType   `yaml:"type"`
	Title       string                `yaml:"title"`
	Description string                `yaml:"description"`
	Layout      dashboard.LayoutEntry `yaml:"layout"`
	Count       *dashboard.CountData  `yaml:"count,omitempty"`
}

type demoReport struct {
	Seed   uint64      `yaml:"seed"`
	Steps  []demoStep  `yaml:"steps"`
	Panels []demoPanel `yaml:"panels"`
}

func (cmd *demoCmd) Run(ctx context.Context, logger *zap.Logger) error {
	doc, err := loadConfig(cmd.ConfigPath)
	if err != nil {
		return err
	}
	seed := cmd.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	report, err := runDemo(ctx, doc, seed, dashboard.NewZapTelemetry(logger))
	if err != nil {
		return err
	}
	return writeReport(os.Stdout, report)
}

func runDemo(ctx context.Context, doc *dashboard.ConfigDocument, seed uint64, telemetry dashboard.Telemetry) (demoReport, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	notes := &dashboard.NotificationRecorder{}
	service, err := dashboardpkg.NewFromConfig(doc, dashboardpkg.Options{
		Allocator: &dashboard.RandomIDAllocator{Draw: rng.IntN},
		Generator: &dashboard.RandomMetricGenerator{IntN: rng.IntN, Float64: rng.Float64},
		Notifier:  notes,
		Telemetry: telemetry,
	})
	if err != nil {
		return demoReport{}, err
	}

	report := demoReport{Seed: seed}
	seen := 0
	record := func(op, panel, result string, err error) {
		step := demoStep{Op: op, Panel: panel, Result: result}
		if err != nil {
			step.Error = err.Error()
		}
		all := notes.Notifications()
		for _, n := range all[seen:] {
			step.Notifications = append(step.Notifications, fmt.Sprintf("%s: %s", n.Kind, n.Message))
		}
		seen = len(all)
		report.Steps = append(report.Steps, step)
	}

	created, err := service.CreatePanel(ctx, dashboard.CreatePanelRequest{
		Type:        dashboard.PanelTypeCount,
		Title:       "CPU Usage",
		Description: "test",
	})
	record("create", "", created, err)

	source := ""
	if ids := dashboard.BootstrapIDs(doc.Panels); len(ids) > 0 {
		source = ids[0]
	}
	cloned, err := service.ClonePanel(ctx, source)
	record("clone", source, cloned, err)

	record("delete", source, "", service.DeletePanel(ctx, source))
	record("delete", cloned, "", service.DeletePanel(ctx, cloned))

	board, err := service.Board(ctx)
	if err != nil {
		return report, err
	}
	layouts := board.Layouts
	if primary := board.Primary(); len(primary) > 0 {
		moved := append([]dashboard.LayoutEntry(nil), primary...)
		moved[0].Y = board.MaxY()
		layouts = dashboard.Layouts{dashboard.PrimaryBreakpoint: moved}
	}
	record("layout", "", "", service.UpdateLayout(ctx, layouts))

	if board, err = service.Board(ctx); err != nil {
		return report, err
	}
	for _, p := range board.Panels() {
		panel := demoPanel{
			ID:          p.ID,
			Type:        p.Type,
			Title:       p.Metadata.Title,
			Description: p.Metadata.Description,
			Layout:      p.Layout,
			Count:       p.Data.Count,
		}
		report.Panels = append(report.Panels, panel)
	}
	return report, nil
}

func writeReport(w io.Writer, report demoReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}
