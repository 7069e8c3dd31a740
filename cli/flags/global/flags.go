// Package global provides the CLI global flags.
package global

import (
	"github.com/urfave/cli/v2"

	"github.com/gruntwork-io/unitfilter/cli/flags"
	"github.com/gruntwork-io/unitfilter/options"
)

const (
	// Logs related flags.

	LogLevelFlagName  = "log-level"
	LogFormatFlagName = "log-format"

	// World related flags.

	ScenarioFlagName = "scenario"
	VarsDBFlagName   = "vars-db"

	// Telemetry flags.

	TelemetryTraceExporterFlagName                  = "telemetry-trace-exporter"
	TelemetryTraceExporterInsecureEndpointFlagName  = "telemetry-trace-exporter-insecure-endpoint"
	TelemetryTraceExporterHTTPEndpointFlagName      = "telemetry-trace-exporter-http-endpoint"
	TraceparentFlagName                             = "traceparent"
	TelemetryMetricExporterFlagName                 = "telemetry-metric-exporter"
	TelemetryMetricExporterInsecureEndpointFlagName = "telemetry-metric-exporter-insecure-endpoint"
)

// NewFlags returns the global flags, each bound to opts.
func NewFlags(opts *options.Options) []cli.Flag {
	prefix := flags.Prefix{flags.EnvPrefix}

	return []cli.Flag{
		&cli.StringFlag{
			Name:        LogLevelFlagName,
			EnvVars:     prefix.EnvVars(LogLevelFlagName),
			Usage:       "Sets the logging level: error, warn, info, debug or trace.",
			Value:       opts.LogLevel,
			Destination: &opts.LogLevel,
		},
		&cli.StringFlag{
			Name:        LogFormatFlagName,
			EnvVars:     prefix.EnvVars(LogFormatFlagName),
			Usage:       "Sets the logging format: text or json.",
			Value:       opts.LogFormat,
			Destination: &opts.LogFormat,
		},
		&cli.StringFlag{
			Name:        ScenarioFlagName,
			Aliases:     []string{"s"},
			EnvVars:     prefix.EnvVars(ScenarioFlagName),
			Usage:       "Scenario document holding the map, sides and units.",
			Destination: &opts.ScenarioPath,
		},
		&cli.StringFlag{
			Name:        VarsDBFlagName,
			EnvVars:     prefix.EnvVars(VarsDBFlagName),
			Usage:       "Sqlite database with variables loaded over the scenario's.",
			Destination: &opts.VarsDBPath,
		},
		&cli.StringFlag{
			Name:        TelemetryTraceExporterFlagName,
			EnvVars:     prefix.EnvVars(TelemetryTraceExporterFlagName),
			Usage:       "Enables tracing with the given exporter: none, console, otlpHttp or otlpGrpc.",
			Destination: &opts.Telemetry.TraceExporter,
		},
		&cli.StringFlag{
			Name:        TelemetryTraceExporterHTTPEndpointFlagName,
			EnvVars:     prefix.EnvVars(TelemetryTraceExporterHTTPEndpointFlagName),
			Usage:       "Endpoint of the otlpHttp trace exporter.",
			Destination: &opts.Telemetry.TraceExporterHTTPEndpoint,
		},
		&cli.BoolFlag{
			Name:        TelemetryTraceExporterInsecureEndpointFlagName,
			EnvVars:     prefix.EnvVars(TelemetryTraceExporterInsecureEndpointFlagName),
			Usage:       "Sends traces without TLS.",
			Destination: &opts.Telemetry.TraceExporterInsecureEndpoint,
		},
		&cli.StringFlag{
			Name:        TraceparentFlagName,
			EnvVars:     []string{"TRACEPARENT"},
			Usage:       "W3C trace parent the spans are attached to.",
			Destination: &opts.Telemetry.TraceParent,
		},
		&cli.StringFlag{
			Name:        TelemetryMetricExporterFlagName,
			EnvVars:     prefix.EnvVars(TelemetryMetricExporterFlagName),
			Usage:       "Enables metrics with the given exporter: none, console, otlpHttp or otlpGrpc.",
			Destination: &opts.Telemetry.MetricExporter,
		},
		&cli.BoolFlag{
			Name:        TelemetryMetricExporterInsecureEndpointFlagName,
			EnvVars:     prefix.EnvVars(TelemetryMetricExporterInsecureEndpointFlagName),
			Usage:       "Sends metrics without TLS.",
			Destination: &opts.Telemetry.MetricExporterInsecureEndpoint,
		},
	}
}
