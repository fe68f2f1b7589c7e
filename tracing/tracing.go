// Package tracing wraps kedge.Table dispatch with an OpenTelemetry span per
// call, named after the matched route once it is known — mirroring the
// teacher's opentelemetry middleware, which starts a span named "unknown"
// and renames it from the matched route in a deferred close.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dormoron/kedge"
)

const instrumentationName = "github.com/dormoron/kedge/tracing"

// Tracer wraps a *kedge.Table[H], starting one span per Dispatch call.
type Tracer[H any] struct {
	table  *kedge.Table[H]
	tracer trace.Tracer
}

// NewTracer builds a Tracer around table. If tr is nil, the global
// TracerProvider's tracer for this package is used.
func NewTracer[H any](table *kedge.Table[H], tr trace.Tracer) *Tracer[H] {
	if tr == nil {
		tr = otel.GetTracerProvider().Tracer(instrumentationName)
	}
	return &Tracer[H]{table: table, tracer: tr}
}

// Dispatch starts a span named "unknown", delegates to the underlying
// Table, renames the span to the matched pattern (or leaves it "unknown"
// on a miss), and ends it before returning.
func (t *Tracer[H]) Dispatch(ctx context.Context, method, path string) (kedge.Match[H], bool) {
	_, span := t.tracer.Start(ctx, "unknown")
	defer span.End()

	span.SetAttributes(
		attribute.String("kedge.method", method),
		attribute.String("kedge.path", path),
	)

	match, ok := t.table.Dispatch(method, path)

	if ok && match.FullPath != "" {
		span.SetName(match.FullPath)
	}
	span.SetAttributes(attribute.Bool("kedge.hit", ok))

	return match, ok
}
