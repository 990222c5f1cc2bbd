package dashboard

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	defaultChartHeight = "320px"
	chartStackName     = "total"
)

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartRenderer turns chart data into embeddable HTML.
type ChartRenderer interface {
	RenderChart(panelID string, data ChartData, theme ChartTheme) (string, error)
}

// EChartsRenderer renders stacked bar charts with go-echarts.
type EChartsRenderer struct {
	cache      RenderCache
	assetsHost string
}

// EChartsRendererOption customizes renderer behavior.
type EChartsRendererOption func(*EChartsRenderer)

// WithChartCache injects a render cache. Pass nil to disable caching.
func WithChartCache(cache RenderCache) EChartsRendererOption {
	return func(r *EChartsRenderer) {
		r.cache = cache
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) EChartsRendererOption {
	return func(r *EChartsRenderer) {
		r.assetsHost = host
	}
}

// NewEChartsRenderer builds a renderer backed by the shared chart cache.
func NewEChartsRenderer(options ...EChartsRendererOption) *EChartsRenderer {
	r := &EChartsRenderer{
		cache:      sharedChartCache,
		assetsHost: DefaultEChartsAssetsHost(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// RenderChart renders data as a stacked bar chart using the theme's palette.
func (r *EChartsRenderer) RenderChart(panelID string, data ChartData, theme ChartTheme) (string, error) {
	if len(data.Series) == 0 {
		return "", fmt.Errorf("dashboard: chart %s has no series", panelID)
	}
	render := func() (string, error) {
		return r.renderStackedBar(panelID, data, theme)
	}
	if r.cache == nil {
		return render()
	}
	key := fmt.Sprintf("%s:%s:%s", panelID, theme, dataHash(data))
	return r.cache.GetOrRender(key, render)
}

func (r *EChartsRenderer) renderStackedBar(panelID string, data ChartData, theme ChartTheme) (string, error) {
	palette := theme.Palette()
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalChartOptions(panelID, palette)...)
	bar.SetXAxis(data.Labels)
	for _, s := range data.Series {
		seriesOpts := []charts.SeriesOpts{
			charts.WithBarChartOpts(opts.BarChart{Stack: chartStackName}),
		}
		if s.Color != "" {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
		}
		bar.AddSeries(s.Name, toBarData(data.Labels, s.Values), seriesOpts...)
	}
	return renderChart(bar)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *EChartsRenderer) globalChartOptions(panelID string, palette ChartPalette) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		ChartID: "panel_" + panelID,
		Theme:   palette.EChartsTheme,
		Width:   "100%",
		Height:  defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{
			Show:      opts.Bool(true),
			Bottom:    "0",
			TextStyle: &opts.TextStyle{Color: palette.Legend},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Color: palette.AxisLabel},
			SplitLine: &opts.SplitLine{
				Show:      opts.Bool(true),
				LineStyle: &opts.LineStyle{Color: palette.SplitLine},
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			AxisLabel: &opts.AxisLabel{Color: palette.AxisLabel},
			SplitLine: &opts.SplitLine{
				Show:      opts.Bool(true),
				LineStyle: &opts.LineStyle{Color: palette.SplitLine},
			},
		}),
	}
}

func toBarData(labels []string, values []int) []opts.BarData {
	data := make([]opts.BarData, len(values))
	for i, v := range values {
		name := ""
		if i < len(labels) {
			name = labels[i]
		}
		data[i] = opts.BarData{Name: name, Value: v}
	}
	return data
}
