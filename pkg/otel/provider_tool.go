package otel

import (
	"context"
	"errors"
	"slices"

	"github.com/adrianliechti/wingman-search/pkg/tool"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type Tool interface {
	Observable
	tool.Provider
}

type observableTool struct {
	provider string

	tool tool.Provider

	callMetric metric.Int64Counter
}

func NewTool(provider string, p tool.Provider) Tool {
	meter := otel.Meter(instrumentationName)

	callMetric, _ := meter.Int64Counter("tool.calls",
		metric.WithDescription("Number of tool invocations by outcome"),
	)

	return &observableTool{
		provider: provider,

		tool: p,

		callMetric: callMetric,
	}
}

func (p *observableTool) otelSetup() {
}

func (p *observableTool) Tools(ctx context.Context) ([]tool.Tool, error) {
	return p.tool.Tools(ctx)
}

func (p *observableTool) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	attrs := []attribute.KeyValue{
		attribute.String("tool.provider", p.provider),
		attribute.String("tool.name", name),
	}

	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "execute_tool "+name, trace.WithAttributes(slices.Concat(attrs, endUserAttrs(ctx))...))
	defer span.End()

	result, err := p.tool.Execute(ctx, name, parameters)

	outcome := "ok"

	switch {
	case errors.Is(err, tool.ErrInvalidParameters), errors.Is(err, tool.ErrInvalidTool):
		outcome = "rejected"
		span.AddEvent("rejected", trace.WithAttributes(attribute.String("reason", err.Error())))

	case err != nil:
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if p.callMetric != nil {
		p.callMetric.Add(ctx, 1, metric.WithAttributes(slices.Concat(attrs, []attribute.KeyValue{attribute.String("outcome", outcome)})...))
	}

	return result, err
}
