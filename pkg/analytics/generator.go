package analytics

import (
	"context"
	"time"

	dashboard "github.com/goliatone/go-metrics-dashboard/components/dashboard"
)

const defaultFetchTimeout = 3 * time.Second

// GeneratorOptions configures a Generator.
type GeneratorOptions struct {
	Timeout   time.Duration
	Fallback  dashboard.MetricGenerator
	Telemetry dashboard.Telemetry
}

// Generator serves panel data from an analytics client. When the remote call
// fails the fallback generator is used so panel creation never blocks on it.
type Generator struct {
	client   Client
	timeout  time.Duration
	fallback dashboard.MetricGenerator
	record   func(ctx context.Context, event string, payload map[string]any)
}

// NewGenerator adapts an analytics client into a dashboard.MetricGenerator.
func NewGenerator(client Client, opts GeneratorOptions) *Generator {
	g := &Generator{
		client:   client,
		timeout:  opts.Timeout,
		fallback: opts.Fallback,
		record:   func(context.Context, string, map[string]any) {},
	}
	if g.timeout <= 0 {
		g.timeout = defaultFetchTimeout
	}
	if g.fallback == nil {
		g.fallback = dashboard.NewRandomMetricGenerator()
	}
	if opts.Telemetry != nil {
		g.record = opts.Telemetry.Record
	}
	return g
}

var _ dashboard.MetricGenerator = (*Generator)(nil)

// Series fetches chart data, falling back on error or empty responses.
func (g *Generator) Series() dashboard.ChartData {
	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()
	if g.client != nil {
		data, err := g.client.FetchSeries(ctx)
		if err == nil && len(data.Labels) > 0 && len(data.Series) > 0 {
			return data
		}
		g.fallbackUsed(ctx, "series", err)
	}
	return g.fallback.Series()
}

// Count fetches a counter, falling back on error.
func (g *Generator) Count() dashboard.CountData {
	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()
	if g.client != nil {
		data, err := g.client.FetchCount(ctx)
		if err == nil {
			return data
		}
		g.fallbackUsed(ctx, "count", err)
	}
	return g.fallback.Count()
}

func (g *Generator) fallbackUsed(ctx context.Context, kind string, err error) {
	payload := map[string]any{"kind": kind}
	if err != nil {
		payload["error"] = err.Error()
	}
	g.record(ctx, "dashboard.analytics.fallback", payload)
}
