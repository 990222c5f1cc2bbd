package dashboard

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Telemetry records dashboard events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// ZapTelemetry writes telemetry events as structured zap log lines. Events
// ending in "_error" are logged at warn level.
type ZapTelemetry struct {
	logger *zap.Logger
}

// NewZapTelemetry wraps logger. A nil logger yields a no-op logger.
func NewZapTelemetry(logger *zap.Logger) *ZapTelemetry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapTelemetry{logger: logger}
}

// Record satisfies Telemetry.
func (t *ZapTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	fields := make([]zap.Field, 0, len(payload))
	for _, key := range sortedKeys(payload) {
		fields = append(fields, zap.Any(key, payload[key]))
	}
	if strings.HasSuffix(event, "_error") {
		t.logger.Warn(event, fields...)
		return
	}
	t.logger.Info(event, fields...)
}

// Telemetries fans an event out to several sinks.
type Telemetries []Telemetry

// Record satisfies Telemetry.
func (ts Telemetries) Record(ctx context.Context, event string, payload map[string]any) {
	for _, t := range ts {
		if t != nil {
			t.Record(ctx, event, payload)
		}
	}
}
