package telemetry

import (
	"context"
	"io"
	"time"

	"github.com/gruntwork-io/unitfilter/internal/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const metricExportInterval = time.Second

type Meter struct {
	metric.Meter
	provider *sdkmetric.MeterProvider
}

// NewMeter creates and configures the metrics collection. Returns nil when no exporter is selected.
func NewMeter(ctx context.Context, appName, appVersion string, writer io.Writer, opts *Options) (*Meter, error) {
	exporter, err := NewMetricExporter(ctx, writer, opts)
	if err != nil {
		return nil, err
	}

	if exporter == nil {
		return nil, nil
	}

	res, err := newResource(appName, appVersion)
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(metricExportInterval))),
	)

	otel.SetMeterProvider(provider)

	return &Meter{
		Meter:    provider.Meter(appName),
		provider: provider,
	}, nil
}

// NewMetricExporter creates the metric exporter named in opts.
func NewMetricExporter(ctx context.Context, writer io.Writer, opts *Options) (sdkmetric.Exporter, error) {
	switch opts.MetricExporter {
	case "", noneExporterType:
		return nil, nil
	case otlpHTTPExporterType:
		var config []otlpmetrichttp.Option
		if opts.MetricExporterInsecureEndpoint {
			config = append(config, otlpmetrichttp.WithInsecure())
		}

		return otlpmetrichttp.New(ctx, config...)
	case otlpGrpcExporterType:
		var config []otlpmetricgrpc.Option
		if opts.MetricExporterInsecureEndpoint {
			config = append(config, otlpmetricgrpc.WithInsecure())
		}

		return otlpmetricgrpc.New(ctx, config...)
	case consoleExporterType:
		return stdoutmetric.New(stdoutmetric.WithWriter(writer))
	}

	return nil, errors.New(&ErrorUnknownExporter{Kind: "metric", Name: opts.MetricExporter})
}

// Time runs fn, then records its duration in milliseconds and bumps the call counter.
// A nil or unconfigured meter just calls fn.
func (meter *Meter) Time(ctx context.Context, name string, attrs map[string]any, fn func(childCtx context.Context) error) error {
	if meter == nil || meter.provider == nil {
		return fn(ctx)
	}

	metricAttrs := metric.WithAttributes(mapToAttributes(attrs)...)
	start := time.Now()

	err := fn(ctx)

	if histogram, herr := meter.Int64Histogram(CleanMetricName(name+"_duration"), metric.WithUnit("ms")); herr == nil {
		histogram.Record(ctx, time.Since(start).Milliseconds(), metricAttrs)
	}

	counterName := name + "_success_count"
	if err != nil {
		counterName = name + "_error_count"
	}

	if counter, cerr := meter.Int64Counter(CleanMetricName(counterName)); cerr == nil {
		counter.Add(ctx, 1, metricAttrs)
	}

	return err
}
