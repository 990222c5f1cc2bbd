package analytics

import (
	"context"

	dashboard "github.com/goliatone/go-metrics-dashboard/components/dashboard"
)

// SeriesClient fetches stacked time series for chart panels.
type SeriesClient interface {
	FetchSeries(ctx context.Context) (dashboard.ChartData, error)
}

// CountClient fetches headline counters for count panels.
type CountClient interface {
	FetchCount(ctx context.Context) (dashboard.CountData, error)
}

// Client is a convenience union for services that implement both calls.
type Client interface {
	SeriesClient
	CountClient
}
