package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	dashboard "github.com/goliatone/go-metrics-dashboard/components/dashboard"
)

// HTTPConfig configures the HTTP analytics client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient reads panel metrics from a remote REST endpoint.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client capable of hitting live analytics APIs.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("analytics: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

var _ Client = (*HTTPClient)(nil)

// FetchSeries implements SeriesClient via GET /series.
func (c *HTTPClient) FetchSeries(ctx context.Context) (dashboard.ChartData, error) {
	var resp seriesResponse
	if err := c.do(ctx, http.MethodGet, "/series", &resp); err != nil {
		return dashboard.ChartData{}, err
	}
	return resp.toChartData()
}

// FetchCount implements CountClient via GET /count.
func (c *HTTPClient) FetchCount(ctx context.Context) (dashboard.CountData, error) {
	var resp countResponse
	if err := c.do(ctx, http.MethodGet, "/count", &resp); err != nil {
		return dashboard.CountData{}, err
	}
	return dashboard.CountData{Value: resp.Value, Increase: resp.Increase}, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("analytics: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("analytics: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("analytics: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("analytics: decode response: %w", err)
	}
	return nil
}

type seriesEntry struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	Values []int  `json:"values"`
}

type seriesResponse struct {
	Labels []string      `json:"labels"`
	Series []seriesEntry `json:"series"`
}

func (r seriesResponse) toChartData() (dashboard.ChartData, error) {
	series := make([]dashboard.ChartSeries, len(r.Series))
	for i, s := range r.Series {
		if len(s.Values) != len(r.Labels) {
			return dashboard.ChartData{}, fmt.Errorf("analytics: series %q has %d values for %d labels", s.Name, len(s.Values), len(r.Labels))
		}
		series[i] = dashboard.ChartSeries{
			Name:   s.Name,
			Color:  s.Color,
			Values: append([]int(nil), s.Values...),
		}
	}
	return dashboard.ChartData{
		Labels: append([]string(nil), r.Labels...),
		Series: series,
	}, nil
}

type countResponse struct {
	Value    int     `json:"value"`
	Increase float64 `json:"increase"`
}
