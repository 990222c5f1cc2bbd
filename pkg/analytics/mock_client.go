package analytics

import (
	"context"
	"sync"

	dashboard "github.com/goliatone/go-metrics-dashboard/components/dashboard"
)

// MockData seeds deterministic analytics responses for tests or local demos.
type MockData struct {
	Series dashboard.ChartData
	Count  dashboard.CountData
	Err    error
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	mu    sync.RWMutex
	data  MockData
	calls int
}

// NewMockClient builds a mock analytics client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// FetchSeries returns a copy of the configured series.
func (c *MockClient) FetchSeries(context.Context) (dashboard.ChartData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.data.Err != nil {
		return dashboard.ChartData{}, c.data.Err
	}
	return cloneChart(c.data.Series), nil
}

// FetchCount returns the configured counter.
func (c *MockClient) FetchCount(context.Context) (dashboard.CountData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.data.Err != nil {
		return dashboard.CountData{}, c.data.Err
	}
	return c.data.Count, nil
}

// Calls reports how many fetches were served.
func (c *MockClient) Calls() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.calls
}

func cloneChart(data dashboard.ChartData) dashboard.ChartData {
	out := dashboard.ChartData{
		Labels: append([]string(nil), data.Labels...),
		Series: make([]dashboard.ChartSeries, len(data.Series)),
	}
	for i, s := range data.Series {
		out.Series[i] = dashboard.ChartSeries{Name: s.Name, Color: s.Color, Values: append([]int(nil), s.Values...)}
	}
	return out
}
