package dashboard

import (
	"context"
	"strings"
)

// PanelType tags a panel as a chart or a counter.
type PanelType string

const (
	PanelTypeChart PanelType = "chart"
	PanelTypeCount PanelType = "count"
)

// Valid reports whether the type is one the board knows how to render.
func (t PanelType) Valid() bool {
	return t == PanelTypeChart || t == PanelTypeCount
}

// PanelTypeFromID extracts the type tag from an identifier such as "chart_1".
func PanelTypeFromID(id string) (PanelType, bool) {
	tag, _, ok := strings.Cut(id, "_")
	if !ok {
		return "", false
	}
	t := PanelType(tag)
	return t, t.Valid()
}

// PanelStore owns the board state. Implementations must apply Update atomically:
// either every change made by fn is committed or none is.
type PanelStore interface {
	Snapshot(ctx context.Context) (Board, error)
	Update(ctx context.Context, fn func(tx *Board) error) error
}

// IDAllocator produces identifiers that are not yet taken.
type IDAllocator interface {
	Allocate(typeTag PanelType, exists func(id string) bool) string
}

// MetricGenerator produces synthetic panel content.
type MetricGenerator interface {
	Series() ChartData
	Count() CountData
}

// Notifier receives user-facing success/error signals.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// RefreshHook notifies transports (REST/WebSocket) about panel changes.
type RefreshHook interface {
	PanelUpdated(ctx context.Context, event PanelEvent) error
}

// LayoutEntry is the grid geometry of one panel. The grid adapter in the
// browser names the identifier "i"; both spellings are accepted on input.
type LayoutEntry struct {
	ID string `json:"i" yaml:"id"`
	X  int    `json:"x" yaml:"x"`
	Y  int    `json:"y" yaml:"y"`
	W  int    `json:"w" yaml:"w"`
	H  int    `json:"h" yaml:"h"`
}

// Layouts maps a breakpoint name to its ordered entries (order = render order).
type Layouts map[string][]LayoutEntry

// PanelMetadata is the user supplied title/description.
type PanelMetadata struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// ChartSeries is one named series aligned by index with ChartData.Labels.
type ChartSeries struct {
	Name   string `json:"name" yaml:"name"`
	Color  string `json:"color,omitempty" yaml:"color,omitempty"`
	Values []int  `json:"values" yaml:"values"`
}

// ChartData backs chart panels.
type ChartData struct {
	Labels []string      `json:"labels" yaml:"labels"`
	Series []ChartSeries `json:"series" yaml:"series"`
}

// CountData backs count panels.
type CountData struct {
	Value    int     `json:"value" yaml:"value"`
	Increase float64 `json:"increase" yaml:"increase"`
}

// PanelData is a tagged union over the panel type; exactly one of Chart or
// Count is set, matching Type.
type PanelData struct {
	Type  PanelType  `json:"type" yaml:"type"`
	Chart *ChartData `json:"chart,omitempty" yaml:"chart,omitempty"`
	Count *CountData `json:"count,omitempty" yaml:"count,omitempty"`
}

// ChartPanelData wraps chart content.
func ChartPanelData(data ChartData) PanelData {
	return PanelData{Type: PanelTypeChart, Chart: &data}
}

// CountPanelData wraps count content.
func CountPanelData(data CountData) PanelData {
	return PanelData{Type: PanelTypeCount, Count: &data}
}

// PanelSnapshot groups everything the board knows about one panel.
type PanelSnapshot struct {
	ID       string        `json:"id"`
	Type     PanelType     `json:"type"`
	Layout   LayoutEntry   `json:"layout"`
	Metadata PanelMetadata `json:"metadata"`
	Data     PanelData     `json:"data"`
}

// ViewerContext captures what the presentation layer needs about the viewer.
type ViewerContext struct {
	UserID   string
	TenantID string
	Theme    ChartTheme
}

// PanelEvent describes changes that transports might care about.
type PanelEvent struct {
	PanelID string    `json:"panel_id,omitempty"`
	Type    PanelType `json:"type,omitempty"`
	Reason  string    `json:"reason"`
}

const (
	reasonCreate = "create"
	reasonClone  = "clone"
	reasonDelete = "delete"
	reasonLayout = "layout"
)
