package telemetry

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/gruntwork-io/unitfilter/internal/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	noneExporterType     = "none"
	consoleExporterType  = "console"
	otlpHTTPExporterType = "otlpHttp"
	otlpGrpcExporterType = "otlpGrpc"
	httpExporterType     = "http"

	traceParentParts = 4
)

type Tracer struct {
	trace.Tracer
	provider   *sdktrace.TracerProvider
	parentSpan *trace.SpanContext
}

// NewTracer creates and configures the traces collection. Returns nil when no exporter is selected.
func NewTracer(ctx context.Context, appName, appVersion string, writer io.Writer, opts *Options) (*Tracer, error) {
	spanExporter, err := NewTraceExporter(ctx, writer, opts)
	if err != nil {
		return nil, err
	}

	if spanExporter == nil {
		return nil, nil
	}

	res, err := newResource(appName, appVersion)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)

	tracer := &Tracer{
		Tracer:   provider.Tracer(appName),
		provider: provider,
	}

	if opts.TraceParent != "" {
		parent, err := parseTraceParent(opts.TraceParent)
		if err != nil {
			return nil, err
		}

		tracer.parentSpan = &parent
	}

	return tracer, nil
}

// NewTraceExporter creates the span exporter named in opts.
func NewTraceExporter(ctx context.Context, writer io.Writer, opts *Options) (sdktrace.SpanExporter, error) {
	switch opts.TraceExporter {
	case "", noneExporterType:
		return nil, nil
	case httpExporterType:
		if opts.TraceExporterHTTPEndpoint == "" {
			return nil, errors.New(&ErrorMissingEndpoint{Flag: "telemetry-trace-exporter-http-endpoint"})
		}

		config := []otlptracehttp.Option{otlptracehttp.WithEndpoint(opts.TraceExporterHTTPEndpoint)}
		if opts.TraceExporterInsecureEndpoint {
			config = append(config, otlptracehttp.WithInsecure())
		}

		return otlptracehttp.New(ctx, config...)
	case otlpHTTPExporterType:
		var config []otlptracehttp.Option
		if opts.TraceExporterInsecureEndpoint {
			config = append(config, otlptracehttp.WithInsecure())
		}

		return otlptracehttp.New(ctx, config...)
	case otlpGrpcExporterType:
		var config []otlptracegrpc.Option
		if opts.TraceExporterInsecureEndpoint {
			config = append(config, otlptracegrpc.WithInsecure())
		}

		return otlptracegrpc.New(ctx, config...)
	case consoleExporterType:
		return stdouttrace.New(stdouttrace.WithWriter(writer))
	}

	return nil, errors.New(&ErrorUnknownExporter{Kind: "trace", Name: opts.TraceExporter})
}

// Trace runs fn inside a span named name. A nil or unconfigured tracer just calls fn.
func (tracer *Tracer) Trace(ctx context.Context, name string, attrs map[string]any, fn func(childCtx context.Context) error) error {
	if tracer == nil || tracer.provider == nil {
		return fn(ctx)
	}

	if tracer.parentSpan != nil {
		ctx = trace.ContextWithSpanContext(ctx, *tracer.parentSpan)
	}

	ctx, span := tracer.Start(ctx, name)
	defer span.End()

	span.SetAttributes(mapToAttributes(attrs)...)

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

func parseTraceParent(value string) (trace.SpanContext, error) {
	parts := strings.Split(value, "-")
	if len(parts) != traceParentParts {
		return trace.SpanContext{}, errors.Errorf("invalid TRACEPARENT value %s", value)
	}

	traceID, err := trace.TraceIDFromHex(parts[1])
	if err != nil {
		return trace.SpanContext{}, errors.New(err)
	}

	spanID, err := trace.SpanIDFromHex(parts[2])
	if err != nil {
		return trace.SpanContext{}, errors.New(err)
	}

	flags, err := strconv.Atoi(parts[3])
	if err != nil {
		return trace.SpanContext{}, errors.Errorf("invalid trace flags: %w", err)
	}

	traceFlags := trace.FlagsSampled
	if flags == 0 {
		traceFlags = 0
	}

	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: traceFlags,
		Remote:     true,
	}), nil
}

func newResource(appName, appVersion string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(appName),
			semconv.ServiceVersion(appVersion),
		),
	)
	if err != nil {
		return nil, errors.New(err)
	}

	return res, nil
}
