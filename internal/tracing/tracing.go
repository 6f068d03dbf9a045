// Package tracing wires the policy pipeline into OpenTelemetry. It stays
// optional: when telemetry isn't configured, Init leaves otel's default
// no-op global provider in place and StartSpan becomes a cheap pass-through.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Context is an alias so call sites in this module don't need to import
// context directly just to thread a deadline/cancellation through Execute.
type Context = context.Context

const instrumentationName = "github.com/nextlevelbuilder/toolgate/internal/policy"

func tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// PipelineOutcome is the ambient observability recorded when a pipeline
// evaluation span ends (SPEC_FULL.md §4.7). It never affects filtering.
type PipelineOutcome struct {
	InputTools   int
	OutputTools  int
	WarningCount int
}

// StartSpan opens a span named name under ctx and returns a function that
// ends it, recording outcome's counts as span attributes.
func StartSpan(ctx Context, name string) func(outcome PipelineOutcome) {
	_, span := tracer().Start(ctx, name)
	return func(outcome PipelineOutcome) {
		span.SetAttributes(
			attribute.Int("toolgate.input_tool_count", outcome.InputTools),
			attribute.Int("toolgate.output_tool_count", outcome.OutputTools),
			attribute.Int("toolgate.warning_count", outcome.WarningCount),
		)
		span.End()
	}
}
