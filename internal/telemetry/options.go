package telemetry

// Options selects the exporters. Empty exporter names mean "none".
type Options struct {
	TraceExporter                  string
	TraceExporterHTTPEndpoint      string
	TraceParent                    string
	MetricExporter                 string
	TraceExporterInsecureEndpoint  bool
	MetricExporterInsecureEndpoint bool
}
