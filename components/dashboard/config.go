package dashboard

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configVersionV1 = "1"
	// ConfigVersion exposes the current config format version for tooling.
	ConfigVersion = configVersionV1
)

// ConfigDocument is the YAML file that seeds a dashboard: grid, bootstrap
// panels, toast styling and default settings.
type ConfigDocument struct {
	Version       string             `json:"version" yaml:"version"`
	Grid          GridConfig         `json:"grid" yaml:"grid"`
	Panels        []BootstrapPanel   `json:"panels" yaml:"panels"`
	Notifications NotificationConfig `json:"notifications" yaml:"notifications"`
	Settings      Settings           `json:"settings" yaml:"settings"`
	Source        string             `json:"-" yaml:"-"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *ConfigDocument {
	return &ConfigDocument{
		Version:       configVersionV1,
		Grid:          DefaultGridConfig(),
		Panels:        DefaultBootstrapPanels(),
		Notifications: DefaultNotificationConfig(),
		Settings:      DefaultSettings(),
	}
}

// ReadConfig loads a config file from disk.
func ReadConfig(path string) (*ConfigDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open config %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode config %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeConfig reads a config document from any reader. Unknown fields are
// rejected.
func DecodeConfig(r io.Reader) (*ConfigDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc ConfigDocument
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dashboard: config is empty")
		}
		return nil, fmt.Errorf("dashboard: parse config: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// WriteConfig encodes doc as YAML.
func WriteConfig(w io.Writer, doc *ConfigDocument) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("dashboard: encode config: %w", err)
	}
	return encoder.Close()
}

// Validate ensures the document is usable.
func (doc *ConfigDocument) Validate() error {
	if doc.Version != configVersionV1 {
		return fmt.Errorf("dashboard: unsupported config version %q", doc.Version)
	}
	if _, ok := doc.Grid.Cols[PrimaryBreakpoint]; !ok {
		return fmt.Errorf("dashboard: grid cols missing %s breakpoint", PrimaryBreakpoint)
	}
	for bp, cols := range doc.Grid.Cols {
		if cols <= 0 {
			return fmt.Errorf("dashboard: grid cols for %s must be positive", bp)
		}
	}
	if doc.Grid.MinW > doc.Grid.MaxW || doc.Grid.MinH > doc.Grid.MaxH {
		return fmt.Errorf("dashboard: grid minimum size exceeds maximum")
	}
	seen := make(map[string]struct{}, len(doc.Panels))
	for idx, panel := range doc.Panels {
		if panel.ID == "" {
			return fmt.Errorf("dashboard: config panel at index %d is missing id", idx)
		}
		if _, ok := PanelTypeFromID(panel.ID); !ok {
			return fmt.Errorf("dashboard: config panel %s must start with chart_ or count_", panel.ID)
		}
		if _, exists := seen[panel.ID]; exists {
			return fmt.Errorf("dashboard: config duplicates panel %s", panel.ID)
		}
		seen[panel.ID] = struct{}{}
		if err := checkGeometry(LayoutEntry{ID: panel.ID, X: panel.X, Y: panel.Y, W: panel.W, H: panel.H}); err != nil {
			return fmt.Errorf("dashboard: config panel %s: %w", panel.ID, err)
		}
	}
	if err := NewJSONSchemaValidator().Validate(SchemaSettings, doc.Settings); err != nil {
		return fmt.Errorf("dashboard: config settings: %w", err)
	}
	return nil
}

func (doc *ConfigDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = configVersionV1
	}
	doc.Grid = doc.Grid.withDefaults()
	if doc.Panels == nil {
		doc.Panels = DefaultBootstrapPanels()
	}
	doc.Notifications = doc.Notifications.withDefaults()
	doc.Settings = doc.Settings.withDefaults()
}
