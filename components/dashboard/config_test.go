package dashboard

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfig(t *testing.T) {
	const payload = `
version: 1
grid:
  row_height: 80
  margin: [8, 8]
panels:
  - id: chart_1
    title: Error rate
    description: Last hour
    w: 12
    h: 6
  - id: count_1
    title: Requests
    y: 6
    w: 4
    h: 4
    count:
      value: 10
      increase: 1.5
notifications:
  duration_ms: 3500
settings:
  theme: dark
`
	doc, err := DecodeConfig(strings.NewReader(payload))
	require.NoError(t, err)

	assert.Equal(t, 80, doc.Grid.RowHeight)
	assert.Equal(t, []int{8, 8}, doc.Grid.Margin)
	assert.Equal(t, 12, doc.Grid.Cols["lg"])
	require.Len(t, doc.Panels, 2)
	assert.Equal(t, "Error rate", doc.Panels[0].Title)
	assert.Equal(t, &CountData{Value: 10, Increase: 1.5}, doc.Panels[1].Count)
	assert.Equal(t, 3500, doc.Notifications.DurationMs)
	assert.Equal(t, "#10B981", doc.Notifications.Success.Background)
	assert.Equal(t, "dark", doc.Settings.Theme)
	assert.Equal(t, 30, doc.Settings.RefreshInterval)
}

func TestDecodeConfigDefaults(t *testing.T) {
	doc, err := DecodeConfig(strings.NewReader("version: \"1\"\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultBootstrapPanels(), doc.Panels)
	assert.Equal(t, DefaultGridConfig(), doc.Grid)
}

func TestDecodeConfigRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"version":        "version: 2\n",
		"unknown field":  "version: 1\nwidgets: []\n",
		"bad prefix":     "panels:\n  - id: gauge_1\n    w: 1\n    h: 1\n",
		"duplicate":      "panels:\n  - id: chart_1\n    w: 1\n    h: 1\n  - id: chart_1\n    w: 1\n    h: 1\n",
		"bad geometry":   "panels:\n  - id: chart_1\n    w: 0\n    h: 1\n",
		"bad settings":   "settings:\n  date_format: YY\n",
		"grid min > max": "grid:\n  min_w: 10\n  max_w: 4\n",
	}
	for name, payload := range cases {
		_, err := DecodeConfig(strings.NewReader(payload))
		assert.Error(t, err, name)
	}
}

func TestWriteAndReadConfigRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteConfig(&buf, DefaultConfig()))

	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	doc, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)
	assert.Equal(t, DefaultBootstrapPanels(), doc.Panels)
	assert.Equal(t, DefaultNotificationConfig(), doc.Notifications)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
