package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Tracer interface for tracing.
type Tracer interface {
	// Start a new span.
	Start(ctx context.Context, spanName string) (context.Context, oteltrace.Span)
	// StartSpanFromHeader continues the trace carried in the request headers.
	StartSpanFromHeader(ctx context.Context, h http.Header, spanName string) (context.Context, oteltrace.Span)
	// InjectHTTP writes the current trace context into outbound headers.
	InjectHTTP(ctx context.Context, h http.Header)
	Shutdown() error
}

// tracer to implement Tracer.
type tracer struct {
	tracer oteltrace.Tracer
	tp     *trace.TracerProvider
}

func (t tracer) Start(ctx context.Context, spanName string) (context.Context, oteltrace.Span) {
	return t.tracer.Start(ctx, spanName)
}

func (t tracer) StartSpanFromHeader(
	ctx context.Context,
	h http.Header,
	spanName string,
) (context.Context, oteltrace.Span) {
	return t.Start(constructContextFromHeader(ctx, h), spanName)
}

func (t tracer) InjectHTTP(ctx context.Context, h http.Header) {
	propagation.TraceContext{}.Inject(ctx, propagation.HeaderCarrier(h))
}

func (t tracer) Shutdown() error {
	ctx := context.Background()
	_ = t.tp.ForceFlush(ctx)

	return t.tp.Shutdown(ctx)
}

// NewTracer creates a new tracing. And set the service name to appName.
func NewTracer(serviceName string, exporter trace.SpanExporter) Tracer {
	tp := newTraceProvider(serviceName, exporter)

	return tracer{
		tracer: tp.Tracer(serviceName),
		tp:     tp,
	}
}

func constructContextFromHeader(ctx context.Context, h http.Header) context.Context {
	return propagation.TraceContext{}.Extract(ctx, propagation.HeaderCarrier(h))
}

func newTraceProvider(serviceName string, exporter trace.SpanExporter) *trace.TracerProvider {
	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		// Record information about this application in a Resource.
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		)),
	)

	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{}),
	)

	otel.SetTracerProvider(tp)

	return tp
}
