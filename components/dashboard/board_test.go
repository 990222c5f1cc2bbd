package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardMaxY(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, 0, b.MaxY())

	b.insert(LayoutEntry{ID: "chart_1", Y: 6, W: 6, H: 6}, PanelMetadata{}, ChartPanelData(ChartData{}), false)
	b.insert(LayoutEntry{ID: "count_1", Y: 2, W: 6, H: 6}, PanelMetadata{}, CountPanelData(CountData{}), false)
	assert.Equal(t, 6, b.MaxY())
}

func seededBoard(t *testing.T) Board {
	t.Helper()
	b, err := SeedBoard(DefaultBootstrapPanels(), nil)
	require.NoError(t, err)
	return b
}

func TestBoardReadsOnReturnedValue(t *testing.T) {
	require.Len(t, seededBoard(t).Primary(), 2)
	assert.True(t, seededBoard(t).HasPanel("chart_1"))
	assert.False(t, seededBoard(t).HasPanel("count_99"))
	assert.Equal(t, seededBoard(t).Primary()[1].Y, seededBoard(t).MaxY())
	assert.NoError(t, seededBoard(t).CheckConsistency())
	assert.Len(t, seededBoard(t).Panels(), 2)

	snap, ok := seededBoard(t).Panel("count_1")
	require.True(t, ok)
	assert.Equal(t, PanelTypeCount, snap.Type)
}

func TestBoardRemoveClearsEveryBreakpoint(t *testing.T) {
	b := NewBoard()
	b.insert(LayoutEntry{ID: "chart_1", W: 6, H: 6}, PanelMetadata{}, ChartPanelData(ChartData{}), false)
	b.Layouts["md"] = []LayoutEntry{{ID: "chart_1", W: 4, H: 4}}

	b.remove("chart_1")
	assert.Empty(t, b.Layouts[PrimaryBreakpoint])
	assert.Empty(t, b.Layouts["md"])
	assert.Empty(t, b.Metadata)
	assert.Empty(t, b.Data)
	assert.NoError(t, b.CheckConsistency())
}

func TestBoardCheckConsistency(t *testing.T) {
	b := NewBoard()
	b.insert(LayoutEntry{ID: "chart_1", W: 6, H: 6}, PanelMetadata{}, ChartPanelData(ChartData{}), false)
	require.NoError(t, b.CheckConsistency())

	orphan := b.Clone()
	orphan.Data["count_9"] = CountPanelData(CountData{})
	assert.Error(t, orphan.CheckConsistency())

	dup := b.Clone()
	dup.Layouts[PrimaryBreakpoint] = append(dup.Layouts[PrimaryBreakpoint], LayoutEntry{ID: "chart_1", W: 1, H: 1})
	assert.Error(t, dup.CheckConsistency())
}

func TestLayoutEntryAcceptsBothIDSpellings(t *testing.T) {
	var entries []LayoutEntry
	require.NoError(t, json.Unmarshal([]byte(`[{"i":"chart_1","x":0,"y":0,"w":6,"h":6},{"id":"count_1","x":6,"y":0,"w":6,"h":6}]`), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "chart_1", entries[0].ID)
	assert.Equal(t, "count_1", entries[1].ID)
	assert.Equal(t, 6, entries[1].X)

	out, err := json.Marshal(entries[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"i":"chart_1","x":0,"y":0,"w":6,"h":6}`, string(out))
}
