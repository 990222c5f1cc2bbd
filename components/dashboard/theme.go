package dashboard

import (
	"strings"

	"github.com/go-echarts/go-echarts/v2/types"
)

// ChartTheme selects the light or dark chart option set.
type ChartTheme string

const (
	ChartThemeLight ChartTheme = "light"
	ChartThemeDark  ChartTheme = "dark"
)

// ParseChartTheme maps "dark" (any case) to the dark set and everything else,
// "system" included, to light. Browsers resolve "system" on their side.
func ParseChartTheme(value string) ChartTheme {
	if strings.EqualFold(strings.TrimSpace(value), string(ChartThemeDark)) {
		return ChartThemeDark
	}
	return ChartThemeLight
}

// ChartPalette holds the colors applied to axes and legend.
type ChartPalette struct {
	EChartsTheme string
	SplitLine    string
	AxisLabel    string
	Legend       string
}

// Palette returns the option set for the theme.
func (t ChartTheme) Palette() ChartPalette {
	if t == ChartThemeDark {
		return ChartPalette{
			EChartsTheme: types.ThemeChalk,
			SplitLine:    "#374151",
			AxisLabel:    "#9CA3AF",
			Legend:       "#E5E7EB",
		}
	}
	return ChartPalette{
		EChartsTheme: types.ThemeWesteros,
		SplitLine:    "#f3f4f6",
		AxisLabel:    "#4B5563",
		Legend:       "#4B5563",
	}
}
