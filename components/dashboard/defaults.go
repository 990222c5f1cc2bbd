package dashboard

// Fallbacks applied by the panel renderer when a lookup misses.
const (
	FallbackTitle       = "Untitled Panel"
	FallbackDescription = "No description"
	FallbackCountLabel  = "Total Records"
	FallbackCountValue  = 468
	FallbackIncrease    = 12.5
)

// Geometry applied to created and cloned panels.
const (
	newPanelWidth  = 6
	newPanelHeight = 6
	cloneRowGap    = 4
)

var defaultSeries = []SeriesSpec{
	{Name: "FulfillmentWebhookController", Color: "#8884d8"},
	{Name: "AuthenticationController1", Color: "#82ca9d"},
	{Name: "AuthenticationController2", Color: "#ffc658"},
	{Name: "PaymentChannelController", Color: "#ff7300"},
	{Name: "CustomerController", Color: "#a4de6c"},
	{Name: "CustomerPaymentCredit", Color: "#d0ed57"},
}

// DefaultSeries returns the six generated series and their colors.
func DefaultSeries() []SeriesSpec {
	return append([]SeriesSpec(nil), defaultSeries...)
}

// BootstrapPanel describes a panel present when the board is first built.
// Bootstrap panels cannot be deleted.
type BootstrapPanel struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	X           int        `json:"x" yaml:"x"`
	Y           int        `json:"y" yaml:"y"`
	W           int        `json:"w" yaml:"w"`
	H           int        `json:"h" yaml:"h"`
	Count       *CountData `json:"count,omitempty" yaml:"count,omitempty"`
}

// DefaultBootstrapPanels returns chart_1 and count_1 side by side.
func DefaultBootstrapPanels() []BootstrapPanel {
	return []BootstrapPanel{
		{
			ID:          "chart_1",
			Title:       "API001: SerializationFailedException",
			Description: "Last 30 minutes data",
			W:           6,
			H:           6,
		},
		{
			ID:          "count_1",
			Title:       "Count of Records",
			Description: "Total records in the system",
			X:           6,
			W:           6,
			H:           6,
			Count:       &CountData{Value: FallbackCountValue, Increase: FallbackIncrease},
		},
	}
}

// GridConfig is handed to the browser grid adapter.
type GridConfig struct {
	Breakpoints map[string]int `json:"breakpoints" yaml:"breakpoints"`
	Cols        map[string]int `json:"cols" yaml:"cols"`
	RowHeight   int            `json:"rowHeight" yaml:"row_height"`
	MinW        int            `json:"minW" yaml:"min_w"`
	MaxW        int            `json:"maxW" yaml:"max_w"`
	MinH        int            `json:"minH" yaml:"min_h"`
	MaxH        int            `json:"maxH" yaml:"max_h"`
	Margin      []int          `json:"margin" yaml:"margin,flow"`
}

// DefaultGridConfig mirrors a 12-column responsive grid with 60px rows.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Breakpoints: map[string]int{"lg": 1200, "md": 996, "sm": 768, "xs": 480, "xxs": 0},
		Cols:        map[string]int{"lg": 12, "md": 12, "sm": 6, "xs": 4, "xxs": 2},
		RowHeight:   60,
		MinW:        4,
		MaxW:        12,
		MinH:        4,
		MaxH:        12,
		Margin:      []int{16, 16},
	}
}

func (g GridConfig) withDefaults() GridConfig {
	def := DefaultGridConfig()
	if len(g.Breakpoints) == 0 {
		g.Breakpoints = def.Breakpoints
	}
	if len(g.Cols) == 0 {
		g.Cols = def.Cols
	}
	if g.RowHeight <= 0 {
		g.RowHeight = def.RowHeight
	}
	if g.MinW <= 0 {
		g.MinW = def.MinW
	}
	if g.MaxW <= 0 {
		g.MaxW = def.MaxW
	}
	if g.MinH <= 0 {
		g.MinH = def.MinH
	}
	if g.MaxH <= 0 {
		g.MaxH = def.MaxH
	}
	if len(g.Margin) != 2 {
		g.Margin = def.Margin
	}
	return g
}
