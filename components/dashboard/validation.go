package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema names known to the default validator.
const (
	SchemaCreatePanel = "create_panel"
	SchemaSettings    = "settings"
)

// PayloadValidator validates request payloads against a named schema.
type PayloadValidator interface {
	Validate(schema string, payload any) error
}

// JSONSchemaValidator compiles named schemas lazily and validates payloads.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	schemas  map[string]map[string]any
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5 and
// preloaded with the panel and settings schemas.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		schemas: map[string]map[string]any{
			SchemaCreatePanel: createPanelSchema(),
			SchemaSettings:    settingsSchema(),
		},
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Register adds or replaces a schema.
func (v *JSONSchemaValidator) Register(name string, schema map[string]any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.schemas[name] = schema
	delete(v.compiled, name)
}

// Validate round-trips payload through JSON and checks it against the schema.
func (v *JSONSchemaValidator) Validate(name string, payload any) error {
	schema, err := v.schemaFor(name)
	if err != nil {
		return err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("dashboard: marshal payload for %s: %w", name, err)
	}
	var normalized any
	if err := json.Unmarshal(data, &normalized); err != nil {
		return fmt.Errorf("dashboard: normalize payload for %s: %w", name, err)
	}
	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("dashboard: payload for %s failed validation: %w", name, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(name string) (*jsonschema.Schema, error) {
	v.mu.RLock()
	compiled, ok := v.compiled[name]
	raw, known := v.schemas[name]
	v.mu.RUnlock()
	if ok {
		return compiled, nil
	}
	if !known {
		return nil, fmt.Errorf("dashboard: unknown schema %s", name)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("dashboard: marshal schema %s: %w", name, err)
	}
	compiler := jsonschema.NewCompiler()
	resource := name + ".json"
	if err := compiler.AddResource(resource, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("dashboard: load schema %s: %w", name, err)
	}
	compiled, err = compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compile schema %s: %w", name, err)
	}
	v.mu.Lock()
	v.compiled[name] = compiled
	v.mu.Unlock()
	return compiled, nil
}

func createPanelSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"type", "title"},
		"properties": map[string]any{
			"type":        map[string]any{"enum": []any{string(PanelTypeChart), string(PanelTypeCount)}},
			"title":       map[string]any{"type": "string", "minLength": 1, "pattern": `\S`},
			"description": map[string]any{"type": "string"},
			"sourceUrl":   map[string]any{"type": "string"},
		},
	}
}

func settingsSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"default_time_range", "refresh_interval", "theme", "date_format"},
		"properties": map[string]any{
			"default_time_range": map[string]any{"enum": stringsToAny(TimeRangeOptions)},
			"refresh_interval":   map[string]any{"type": "integer", "minimum": 1},
			"theme":              map[string]any{"enum": stringsToAny(ThemeOptions)},
			"date_format":        map[string]any{"enum": stringsToAny(DateFormatOptions)},
		},
	}
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
