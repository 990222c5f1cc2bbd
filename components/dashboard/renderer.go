package dashboard

import (
	"io"
	"strings"
)

// Renderer describes the template renderer contract needed by the controller.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// PanelView is the presentation model for one panel.
type PanelView struct {
	ID          string    `json:"id"`
	Type        PanelType `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	// DescriptionHTML is set when a description renderer is configured.
	DescriptionHTML string      `json:"description_html,omitempty"`
	Layout          LayoutEntry `json:"layout"`
	Protected       bool        `json:"protected"`
	Chart           *ChartData  `json:"chart,omitempty"`
	ChartHTML       string      `json:"chart_html,omitempty"`
	Count           *CountData  `json:"count,omitempty"`
	CountLabel      string      `json:"count_label,omitempty"`
	Error           string      `json:"error,omitempty"`
}

// PanelRenderer builds PanelViews from a board, substituting fallbacks when a
// lookup misses so a half-populated board still renders.
type PanelRenderer struct {
	charts       ChartRenderer
	generator    MetricGenerator
	protected    func(id string) bool
	descriptions DescriptionRenderer
}

// PanelRendererOption customizes the renderer.
type PanelRendererOption func(*PanelRenderer)

// WithProtectedCheck marks views whose delete action must be hidden.
func WithProtectedCheck(fn func(id string) bool) PanelRendererOption {
	return func(r *PanelRenderer) {
		r.protected = fn
	}
}

// WithFallbackGenerator overrides the generator used when chart data is missing.
func WithFallbackGenerator(gen MetricGenerator) PanelRendererOption {
	return func(r *PanelRenderer) {
		r.generator = gen
	}
}

// WithDescriptionRenderer renders descriptions to HTML, e.g. Markdown.
func WithDescriptionRenderer(d DescriptionRenderer) PanelRendererOption {
	return func(r *PanelRenderer) {
		r.descriptions = d
	}
}

// NewPanelRenderer builds a renderer. A nil chart renderer skips chart HTML.
func NewPanelRenderer(charts ChartRenderer, options ...PanelRendererOption) *PanelRenderer {
	r := &PanelRenderer{
		charts:    charts,
		generator: NewRandomMetricGenerator(),
		protected: func(string) bool { return false },
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Render picks the chart presentation for "chart_" ids and the count
// presentation for everything else.
func (r *PanelRenderer) Render(id string, board Board, theme ChartTheme) PanelView {
	meta := board.Metadata[id]
	view := PanelView{
		ID:          id,
		Title:       fallback(meta.Title, FallbackTitle),
		Description: fallback(meta.Description, FallbackDescription),
		Protected:   r.protected(id),
	}
	if entry, ok := board.entry(id); ok {
		view.Layout = entry
	}
	if r.descriptions != nil {
		if html, err := r.descriptions.RenderDescription(view.Description); err == nil {
			view.DescriptionHTML = html
		}
	}
	data, hasData := board.Data[id]
	if typ, _ := PanelTypeFromID(id); typ == PanelTypeChart {
		view.Type = PanelTypeChart
		chart := r.chartData(data, hasData)
		view.Chart = &chart
		if r.charts != nil {
			html, err := r.charts.RenderChart(id, chart, theme)
			if err != nil {
				view.Error = err.Error()
			} else {
				view.ChartHTML = html
			}
		}
		return view
	}
	view.Type = PanelTypeCount
	count := CountData{Value: FallbackCountValue, Increase: FallbackIncrease}
	if hasData && data.Count != nil {
		count = *data.Count
	}
	view.Count = &count
	view.CountLabel = FallbackCountLabel
	return view
}

// RenderBoard renders every panel in primary layout order.
func (r *PanelRenderer) RenderBoard(board Board, theme ChartTheme) []PanelView {
	views := make([]PanelView, 0, len(board.Primary()))
	for _, entry := range board.Primary() {
		views = append(views, r.Render(entry.ID, board, theme))
	}
	return views
}

func (r *PanelRenderer) chartData(data PanelData, ok bool) ChartData {
	if ok && data.Chart != nil && len(data.Chart.Series) > 0 {
		return *clonePanelData(data).Chart
	}
	return r.generator.Series()
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
