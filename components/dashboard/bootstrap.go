package dashboard

import (
	"errors"
	"fmt"
)

// SeedBoard builds the initial board from bootstrap panels. Chart panels and
// count panels without fixed data get generated content.
func SeedBoard(panels []BootstrapPanel, generator MetricGenerator) (Board, error) {
	if generator == nil {
		generator = NewRandomMetricGenerator()
	}
	board := NewBoard()
	var seedErr error
	for _, p := range panels {
		typ, ok := PanelTypeFromID(p.ID)
		if !ok {
			seedErr = errors.Join(seedErr, fmt.Errorf("seed panel %q: unknown type prefix", p.ID))
			continue
		}
		if board.HasPanel(p.ID) {
			seedErr = errors.Join(seedErr, fmt.Errorf("seed panel %q: duplicate id", p.ID))
			continue
		}
		entry := LayoutEntry{ID: p.ID, X: p.X, Y: p.Y, W: p.W, H: p.H}
		if err := checkGeometry(entry); err != nil {
			seedErr = errors.Join(seedErr, fmt.Errorf("seed panel %q: %w", p.ID, err))
			continue
		}
		board.insert(entry, PanelMetadata{Title: p.Title, Description: p.Description}, seedData(typ, p, generator), false)
	}
	return board, seedErr
}

func seedData(typ PanelType, p BootstrapPanel, generator MetricGenerator) PanelData {
	if typ == PanelTypeCount {
		if p.Count != nil {
			return CountPanelData(*p.Count)
		}
		return CountPanelData(generator.Count())
	}
	return ChartPanelData(generator.Series())
}

// BootstrapIDs lists the identifiers of the given panels.
func BootstrapIDs(panels []BootstrapPanel) []string {
	ids := make([]string, 0, len(panels))
	for _, p := range panels {
		ids = append(ids, p.ID)
	}
	return ids
}
