package dashboard

import (
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCache struct {
	inner *ChartCache
	calls int
}

func (c *countingCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	c.calls++
	return c.inner.GetOrRender(key, render)
}

func sampleChartData() ChartData {
	return (&RandomMetricGenerator{IntN: func(int) int { return 4 }}).Series()
}

func TestEChartsRendererStackedBar(t *testing.T) {
	t.Parallel()
	renderer := NewEChartsRenderer(WithChartCache(nil))

	html, err := renderer.RenderChart("chart_1", sampleChartData(), ChartThemeLight)
	require.NoError(t, err)

	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "FulfillmentWebhookController")
	assert.Contains(t, html, "#8884d8")
	assert.Contains(t, html, `"stack":"total"`)
	assert.Contains(t, html, "#f3f4f6")
	assert.Contains(t, html, "12:00 PM")
}

func TestEChartsRendererDarkPalette(t *testing.T) {
	t.Parallel()
	renderer := NewEChartsRenderer(WithChartCache(nil))

	html, err := renderer.RenderChart("chart_1", sampleChartData(), ChartThemeDark)
	require.NoError(t, err)
	assert.Contains(t, html, "#374151")
	assert.Contains(t, html, "#E5E7EB")
	assert.Contains(t, html, types.ThemeChalk)
}

func TestEChartsRendererRejectsEmptyData(t *testing.T) {
	t.Parallel()
	_, err := NewEChartsRenderer().RenderChart("chart_1", ChartData{}, ChartThemeLight)
	assert.Error(t, err)
}

func TestEChartsRendererUsesCache(t *testing.T) {
	t.Parallel()
	cache := &countingCache{inner: NewChartCache(time.Minute)}
	renderer := NewEChartsRenderer(WithChartCache(cache))
	data := sampleChartData()

	first, err := renderer.RenderChart("chart_1", data, ChartThemeLight)
	require.NoError(t, err)
	second, err := renderer.RenderChart("chart_1", data, ChartThemeLight)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, cache.calls)
	assert.Equal(t, 1, cache.inner.Len())

	_, err = renderer.RenderChart("chart_1", data, ChartThemeDark)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.inner.Len())
}

func TestEChartsRendererAssetsHost(t *testing.T) {
	t.Setenv("GO_DASHBOARD_ECHARTS_CDN", "https://cdn.example.com/echarts")
	renderer := NewEChartsRenderer(WithChartCache(nil))
	html, err := renderer.RenderChart("chart_1", sampleChartData(), ChartThemeLight)
	require.NoError(t, err)
	assert.Contains(t, html, "https://cdn.example.com/echarts/")
}

func TestParseChartTheme(t *testing.T) {
	assert.Equal(t, ChartThemeDark, ParseChartTheme(" Dark "))
	assert.Equal(t, ChartThemeLight, ParseChartTheme("system"))
	assert.Equal(t, ChartThemeLight, ParseChartTheme(""))
	assert.Equal(t, types.ThemeWesteros, ChartThemeLight.Palette().EChartsTheme)
}
