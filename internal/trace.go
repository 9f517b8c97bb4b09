package internal

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const applySpanName = "vars.apply"

func (r *Runtime) startApplySpan(ctx context.Context, tracer trace.Tracer) (context.Context, trace.Span) {
	return tracer.Start(ctx, applySpanName, trace.WithSpanKind(trace.SpanKindInternal))
}

type applyStats struct {
	tick     Tick
	passes   int
	writes   int
	rejected int
	hooks    int
}

func endApplySpan(span trace.Span, stats applyStats, err error) {
	span.SetAttributes(
		attribute.Int64("vars.tick", int64(stats.tick)),
		attribute.Int("vars.passes", stats.passes),
		attribute.Int("vars.writes", stats.writes),
		attribute.Int("vars.writes_rejected", stats.rejected),
		attribute.Int("vars.hook_calls", stats.hooks),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}
