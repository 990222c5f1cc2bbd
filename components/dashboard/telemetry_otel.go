package dashboard

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const otelAttributePrefix = "dashboard."

// OTelTelemetry records each event as a zero-length span so dashboard
// transitions show up next to the request spans of the host application.
type OTelTelemetry struct {
	tracer trace.Tracer
}

// NewOTelTelemetry wraps tracer. A nil tracer yields a no-op tracer.
func NewOTelTelemetry(tracer trace.Tracer) *OTelTelemetry {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	return &OTelTelemetry{tracer: tracer}
}

// Record satisfies Telemetry.
func (t *OTelTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	attrs := make([]attribute.KeyValue, 0, len(payload))
	for _, key := range sortedKeys(payload) {
		attrs = append(attrs, otelAttribute(otelAttributePrefix+key, payload[key]))
	}
	_, span := t.tracer.Start(ctx, event, trace.WithAttributes(attrs...))
	if strings.HasSuffix(event, "_error") || strings.HasSuffix(event, "_refused") {
		msg, _ := payload["error"].(string)
		span.SetStatus(codes.Error, msg)
	}
	span.End()
}

func otelAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}
