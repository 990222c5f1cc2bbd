package dashboard

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	chartPoints     = 12
	chartStep       = 5 * time.Minute
	chartLabelFmt   = "03:04 PM"
	maxSeriesValue  = 10
	maxCountValue   = 1000
	maxCountPercent = 20
)

// SeriesSpec names a generated series and its bar color.
type SeriesSpec struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// RandomMetricGenerator produces mock chart/count content.
type RandomMetricGenerator struct {
	// Reference is the timestamp of the first label.
	Reference time.Time
	Palette   []SeriesSpec
	IntN      func(n int) int
	Float64   func() float64
}

// NewRandomMetricGenerator wires the default series and math/rand/v2 sources.
func NewRandomMetricGenerator() *RandomMetricGenerator {
	return &RandomMetricGenerator{
		Reference: DefaultChartReference(),
		Palette:   DefaultSeries(),
		IntN:      rand.IntN,
		Float64:   rand.Float64,
	}
}

// DefaultChartReference is 2024-02-13 12:00 local time.
func DefaultChartReference() time.Time {
	return time.Date(2024, time.February, 13, 12, 0, 0, 0, time.Local)
}

// Series returns 12 labels five minutes apart and one value per label for each
// configured series, every value in [0, 10).
func (g *RandomMetricGenerator) Series() ChartData {
	g = g.normalized()
	labels := make([]string, chartPoints)
	for i := range labels {
		labels[i] = g.Reference.Add(time.Duration(i) * chartStep).Format(chartLabelFmt)
	}
	series := make([]ChartSeries, len(g.Palette))
	for i, spec := range g.Palette {
		values := make([]int, chartPoints)
		for j := range values {
			values[j] = g.IntN(maxSeriesValue)
		}
		series[i] = ChartSeries{Name: spec.Name, Color: spec.Color, Values: values}
	}
	return ChartData{Labels: labels, Series: series}
}

// Count returns a value in [0, 1000) and an increase in [0, 20) with one decimal.
func (g *RandomMetricGenerator) Count() CountData {
	g = g.normalized()
	increase := math.Round(g.Float64()*maxCountPercent*10) / 10
	if increase >= maxCountPercent {
		increase = maxCountPercent - 0.1
	}
	return CountData{
		Value:    g.IntN(maxCountValue),
		Increase: increase,
	}
}

func (g *RandomMetricGenerator) normalized() *RandomMetricGenerator {
	out := RandomMetricGenerator{}
	if g != nil {
		out = *g
	}
	if out.Reference.IsZero() {
		out.Reference = DefaultChartReference()
	}
	if len(out.Palette) == 0 {
		out.Palette = DefaultSeries()
	}
	if out.IntN == nil {
		out.IntN = rand.IntN
	}
	if out.Float64 == nil {
		out.Float64 = rand.Float64
	}
	return &out
}
