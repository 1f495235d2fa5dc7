package otel

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"time"

	"github.com/adrianliechti/wingman-search/pkg/searcher"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type Searcher interface {
	Observable
	searcher.Provider
}

type observableSearcher struct {
	id       string
	provider string

	searcher searcher.Provider

	durationMetric metric.Float64Histogram
}

func NewSearcher(provider, id string, p searcher.Provider) Searcher {
	meter := otel.Meter(instrumentationName)

	durationMetric, _ := meter.Float64Histogram("search.client.duration",
		metric.WithDescription("Duration of search provider calls"),
		metric.WithUnit("s"),
	)

	return &observableSearcher{
		id:       id,
		provider: provider,

		searcher: p,

		durationMetric: durationMetric,
	}
}

func (p *observableSearcher) otelSetup() {
}

func (p *observableSearcher) Search(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
	attrs := []attribute.KeyValue{
		attribute.String("search.provider", p.provider),
		attribute.String("search.id", p.id),
	}

	if options != nil && options.Engine != "" {
		attrs = append(attrs, attribute.String("search.engine", string(options.Engine)))
	}

	spanAttrs := slices.Concat(attrs, endUserAttrs(ctx))

	if EnableDebug {
		spanAttrs = append(spanAttrs, attribute.String("search.query", query))
	}

	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "search "+p.id, trace.WithAttributes(spanAttrs...))
	defer span.End()

	start := time.Now()

	result, err := p.searcher.Search(ctx, query, options)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		var statusErr *searcher.StatusError

		if errors.As(err, &statusErr) {
			attrs = append(attrs, attribute.String("error.type", strconv.Itoa(statusErr.StatusCode)))
		} else {
			attrs = append(attrs, attribute.String("error.type", "error"))
		}
	} else {
		span.SetAttributes(attribute.Int("search.results", len(result)))
	}

	if p.durationMetric != nil {
		p.durationMetric.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attrs...))
	}

	return result, err
}
