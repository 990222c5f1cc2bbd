package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const (
	defaultDashboardTemplate = "dashboard.html"
	defaultSettingsTemplate  = "settings.html"
	defaultBasePath          = "/admin"
)

// BoardReader is the read side of the Service the controller depends on.
type BoardReader interface {
	Board(ctx context.Context) (Board, error)
}

// SettingsReader exposes the current dashboard settings.
type SettingsReader interface {
	Settings(ctx context.Context) Settings
}

// ControllerOptions wires the controller collaborators.
type ControllerOptions struct {
	Service          BoardReader
	Settings         SettingsReader
	Panels           *PanelRenderer
	Renderer         Renderer
	Template         string
	SettingsTemplate string
	Grid             GridConfig
	BasePath         string
}

// Controller builds the page and JSON payloads served to the browser.
type Controller struct {
	opts ControllerOptions
}

// NewController applies defaults and returns a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Panels == nil {
		opts.Panels = NewPanelRenderer(nil)
	}
	if opts.Template == "" {
		opts.Template = defaultDashboardTemplate
	}
	if opts.SettingsTemplate == "" {
		opts.SettingsTemplate = defaultSettingsTemplate
	}
	if opts.BasePath == "" {
		opts.BasePath = defaultBasePath
	}
	opts.Grid = opts.Grid.withDefaults()
	return &Controller{opts: opts}
}

// LayoutPayload is what the grid adapter consumes on load.
type LayoutPayload struct {
	Grid    GridConfig  `json:"grid"`
	Layouts Layouts     `json:"layouts"`
	Panels  []PanelView `json:"panels"`
	Theme   ChartTheme  `json:"theme"`
}

// LayoutPayload renders every panel for the viewer.
func (c *Controller) LayoutPayload(ctx context.Context, viewer ViewerContext) (LayoutPayload, error) {
	if c.opts.Service == nil {
		return LayoutPayload{}, errors.New("dashboard: controller has no service")
	}
	board, err := c.opts.Service.Board(ctx)
	if err != nil {
		return LayoutPayload{}, err
	}
	theme := c.resolveTheme(ctx, viewer)
	return LayoutPayload{
		Grid:    c.opts.Grid,
		Layouts: board.Layouts,
		Panels:  c.opts.Panels.RenderBoard(board, theme),
		Theme:   theme,
	}, nil
}

// RenderTemplate writes the dashboard page.
func (c *Controller) RenderTemplate(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	if c.opts.Renderer == nil {
		return errors.New("dashboard: controller has no template renderer")
	}
	payload, err := c.LayoutPayload(ctx, viewer)
	if err != nil {
		return err
	}
	state, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("dashboard: encode layout payload: %w", err)
	}
	_, err = c.opts.Renderer.Render(c.opts.Template, map[string]any{
		"base_path":  c.opts.BasePath,
		"panels":     payload.Panels,
		"theme":      string(payload.Theme),
		"state_json": string(state),
		"types":      []string{string(PanelTypeChart), string(PanelTypeCount)},
	}, out)
	return err
}

// RenderSettings writes the settings page.
func (c *Controller) RenderSettings(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	if c.opts.Renderer == nil {
		return errors.New("dashboard: controller has no template renderer")
	}
	settings := DefaultSettings()
	if c.opts.Settings != nil {
		settings = c.opts.Settings.Settings(ctx)
	}
	_, err := c.opts.Renderer.Render(c.opts.SettingsTemplate, map[string]any{
		"base_path":           c.opts.BasePath,
		"theme":               string(c.resolveTheme(ctx, viewer)),
		"settings":            settings,
		"time_range_options":  TimeRangeOptions,
		"theme_options":       ThemeOptions,
		"date_format_options": DateFormatOptions,
	}, out)
	return err
}

func (c *Controller) resolveTheme(ctx context.Context, viewer ViewerContext) ChartTheme {
	if viewer.Theme != "" {
		return viewer.Theme
	}
	if c.opts.Settings != nil {
		return ParseChartTheme(c.opts.Settings.Settings(ctx).Theme)
	}
	return ChartThemeLight
}
