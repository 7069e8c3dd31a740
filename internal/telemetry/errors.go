package telemetry

import "fmt"

// ErrorMissingEndpoint is returned when the "http" trace exporter has no endpoint configured.
type ErrorMissingEndpoint struct {
	Flag string
}

func (e *ErrorMissingEndpoint) Error() string {
	return fmt.Sprintf("trace exporter %q requires --%s", "http", e.Flag)
}

// ErrorUnknownExporter is returned for exporter names we do not know.
type ErrorUnknownExporter struct {
	Kind string
	Name string
}

func (e *ErrorUnknownExporter) Error() string {
	return fmt.Sprintf("unknown %s exporter %q", e.Kind, e.Name)
}
