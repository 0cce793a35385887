// Package otel exports schema-build and fetch events as OpenTelemetry spans.
package otel

import (
	"context"
	"sync"

	"github.com/fqueiruga/graphql-server-plugin/internal/eventbus"
	"github.com/fqueiruga/graphql-server-plugin/internal/events"
	"github.com/fqueiruga/graphql-server-plugin/internal/opid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithInsecure()))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	sub := &subscriber{tracer: otel.Tracer("graphql-server-plugin")}
	sub.register()

	return tp.Shutdown, nil
}

type subscriber struct {
	tracer     trace.Tracer
	buildSpans sync.Map // opid -> trace.Span
	fetchSpans sync.Map // opid -> trace.Span
}

func (s *subscriber) register() {
	eventbus.Subscribe(func(ctx context.Context, e events.SchemaBuildStart) {
		id, _ := opid.FromContext(ctx)
		_, span := s.tracer.Start(ctx, "schema.build")
		s.buildSpans.Store(id, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.SchemaBuildFinish) {
		id, _ := opid.FromContext(ctx)
		v, ok := s.buildSpans.LoadAndDelete(id)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(attribute.Int("schema.type_count", e.Types))
		if e.Err != nil {
			span.SetStatus(codes.Error, e.Err.Error())
		}
		span.End()
	})

	eventbus.Subscribe(func(ctx context.Context, e events.FetchStart) {
		id, _ := opid.FromContext(ctx)
		_, span := s.tracer.Start(ctx, "fetch."+e.Field)
		span.SetAttributes(
			attribute.String("fetch.field", e.Field),
			attribute.Int("fetch.offset", e.Offset),
			attribute.Int("fetch.limit", e.Limit),
		)
		if e.TypeName != "" {
			span.SetAttributes(attribute.String("fetch.type", e.TypeName))
		}
		if e.ID != "" {
			span.SetAttributes(attribute.String("fetch.id", e.ID))
		}
		s.fetchSpans.Store(id, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.FetchFinish) {
		id, _ := opid.FromContext(ctx)
		v, ok := s.fetchSpans.LoadAndDelete(id)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(attribute.Int("fetch.count", e.Count))
		if e.Err != nil {
			span.SetStatus(codes.Error, e.Err.Error())
		}
		span.End()
	})
}
