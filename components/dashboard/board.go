package dashboard

import (
	"encoding/json"
	"fmt"
	"sort"
)

// PrimaryBreakpoint is the only breakpoint authored by create/clone. The grid
// adapter derives the others.
const PrimaryBreakpoint = "lg"

// Board is the single state object behind the dashboard: layout geometry,
// metadata and data, all keyed by panel identifier.
type Board struct {
	Layouts  Layouts                  `json:"layouts" yaml:"layouts"`
	Metadata map[string]PanelMetadata `json:"metadata" yaml:"metadata"`
	Data     map[string]PanelData     `json:"data" yaml:"data"`
}

// NewBoard returns an empty board with the primary breakpoint initialised.
func NewBoard() Board {
	return Board{
		Layouts:  Layouts{PrimaryBreakpoint: []LayoutEntry{}},
		Metadata: map[string]PanelMetadata{},
		Data:     map[string]PanelData{},
	}
}

// Primary returns the ordered entries of the primary breakpoint.
func (b Board) Primary() []LayoutEntry {
	return b.Layouts[PrimaryBreakpoint]
}

// HasPanel reports whether id is laid out on the primary breakpoint.
func (b Board) HasPanel(id string) bool {
	_, ok := b.entry(id)
	return ok
}

func (b Board) entry(id string) (LayoutEntry, bool) {
	for _, e := range b.Layouts[PrimaryBreakpoint] {
		if e.ID == id {
			return e, true
		}
	}
	return LayoutEntry{}, false
}

// MaxY returns the largest row offset on the primary breakpoint, 0 when empty.
func (b Board) MaxY() int {
	max := 0
	for i, e := range b.Layouts[PrimaryBreakpoint] {
		if i == 0 || e.Y > max {
			max = e.Y
		}
	}
	return max
}

// Panel assembles the snapshot for one identifier.
func (b Board) Panel(id string) (PanelSnapshot, bool) {
	entry, ok := b.entry(id)
	if !ok {
		return PanelSnapshot{}, false
	}
	t, _ := PanelTypeFromID(id)
	return PanelSnapshot{
		ID:       id,
		Type:     t,
		Layout:   entry,
		Metadata: b.Metadata[id],
		Data:     clonePanelData(b.Data[id]),
	}, true
}

// Panels returns snapshots in primary render order.
func (b Board) Panels() []PanelSnapshot {
	out := make([]PanelSnapshot, 0, len(b.Layouts[PrimaryBreakpoint]))
	for _, e := range b.Layouts[PrimaryBreakpoint] {
		if p, ok := b.Panel(e.ID); ok {
			out = append(out, p)
		}
	}
	return out
}

func (b *Board) insert(entry LayoutEntry, meta PanelMetadata, data PanelData, front bool) {
	primary := b.Layouts[PrimaryBreakpoint]
	if front {
		primary = append([]LayoutEntry{entry}, primary...)
	} else {
		primary = append(primary, entry)
	}
	b.Layouts[PrimaryBreakpoint] = primary
	b.Metadata[entry.ID] = meta
	b.Data[entry.ID] = data
}

func (b *Board) shiftPrimary(rows int) {
	primary := b.Layouts[PrimaryBreakpoint]
	for i := range primary {
		primary[i].Y += rows
	}
}

func (b *Board) remove(id string) {
	for bp, entries := range b.Layouts {
		b.Layouts[bp] = filterEntries(entries, func(e LayoutEntry) bool { return e.ID != id })
	}
	delete(b.Metadata, id)
	delete(b.Data, id)
}

// CheckConsistency verifies that the primary layout, metadata and data maps
// name exactly the same identifiers, each laid out once.
func (b Board) CheckConsistency() error {
	seen := make(map[string]struct{}, len(b.Layouts[PrimaryBreakpoint]))
	for _, e := range b.Layouts[PrimaryBreakpoint] {
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("dashboard: panel %s laid out more than once", e.ID)
		}
		seen[e.ID] = struct{}{}
		if _, ok := b.Metadata[e.ID]; !ok {
			return fmt.Errorf("dashboard: panel %s has no metadata", e.ID)
		}
		if _, ok := b.Data[e.ID]; !ok {
			return fmt.Errorf("dashboard: panel %s has no data", e.ID)
		}
	}
	for _, id := range sortedKeys(b.Metadata) {
		if _, ok := seen[id]; !ok {
			return fmt.Errorf("dashboard: metadata for %s has no layout entry", id)
		}
	}
	for _, id := range sortedKeys(b.Data) {
		if _, ok := seen[id]; !ok {
			return fmt.Errorf("dashboard: data for %s has no layout entry", id)
		}
	}
	return nil
}

// Clone deep-copies the board so callers can mutate it freely.
func (b Board) Clone() Board {
	out := Board{
		Layouts:  make(Layouts, len(b.Layouts)),
		Metadata: make(map[string]PanelMetadata, len(b.Metadata)),
		Data:     make(map[string]PanelData, len(b.Data)),
	}
	for bp, entries := range b.Layouts {
		out.Layouts[bp] = append([]LayoutEntry{}, entries...)
	}
	if _, ok := out.Layouts[PrimaryBreakpoint]; !ok {
		out.Layouts[PrimaryBreakpoint] = []LayoutEntry{}
	}
	for id, meta := range b.Metadata {
		out.Metadata[id] = meta
	}
	for id, data := range b.Data {
		out.Data[id] = clonePanelData(data)
	}
	return out
}

func clonePanelData(data PanelData) PanelData {
	out := PanelData{Type: data.Type}
	if data.Chart != nil {
		chart := ChartData{
			Labels: append([]string(nil), data.Chart.Labels...),
			Series: make([]ChartSeries, len(data.Chart.Series)),
		}
		for i, s := range data.Chart.Series {
			chart.Series[i] = ChartSeries{Name: s.Name, Color: s.Color, Values: append([]int(nil), s.Values...)}
		}
		out.Chart = &chart
	}
	if data.Count != nil {
		count := *data.Count
		out.Count = &count
	}
	return out
}

func filterEntries(entries []LayoutEntry, keep func(LayoutEntry) bool) []LayoutEntry {
	out := make([]LayoutEntry, 0, len(entries))
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnmarshalJSON accepts both the grid adapter's "i" and the longer "id".
func (e *LayoutEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		I  string `json:"i"`
		ID string `json:"id"`
		X  int    `json:"x"`
		Y  int    `json:"y"`
		W  int    `json:"w"`
		H  int    `json:"h"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.ID = raw.I
	if e.ID == "" {
		e.ID = raw.ID
	}
	e.X, e.Y, e.W, e.H = raw.X, raw.Y, raw.W, raw.H
	return nil
}
