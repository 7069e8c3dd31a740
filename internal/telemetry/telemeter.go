// Package telemetry collects traces and metrics around filter compilation and map queries.
package telemetry

import (
	"context"
	"io"

	"github.com/gruntwork-io/unitfilter/internal/errors"
)

// Telemeter pairs the span and duration collectors. Either half is nil when its exporter is
// "none", and a zero Telemeter still runs the callbacks handed to Collect.
type Telemeter struct {
	*Tracer
	*Meter
}

// NewTelemeter builds both collectors from opts. Spans and metrics written by the console
// exporters go to writer.
func NewTelemeter(ctx context.Context, appName, appVersion string, writer io.Writer, opts *Options) (*Telemeter, error) {
	tracer, err := NewTracer(ctx, appName, appVersion, writer, opts)
	if err != nil {
		return nil, errors.New(err)
	}

	meter, err := NewMeter(ctx, appName, appVersion, writer, opts)
	if err != nil {
		// The tracer provider is already registered globally.
		tlm := &Telemeter{Tracer: tracer}
		return nil, (&errors.MultiError{}).Append(errors.New(err), tlm.Shutdown(ctx)).ErrorOrNil()
	}

	return &Telemeter{Tracer: tracer, Meter: meter}, nil
}

// Shutdown flushes pending spans and metrics. Both providers are shut down even if the first
// fails, and a second call is a no-op.
func (tlm *Telemeter) Shutdown(ctx context.Context) error {
	if tlm == nil {
		return nil
	}

	errs := &errors.MultiError{}

	if tlm.Tracer != nil && tlm.Tracer.provider != nil {
		errs = errs.Append(tlm.Tracer.provider.Shutdown(ctx))
		tlm.Tracer.provider = nil
	}

	if tlm.Meter != nil && tlm.Meter.provider != nil {
		errs = errs.Append(tlm.Meter.provider.Shutdown(ctx))
		tlm.Meter.provider = nil
	}

	if err := errs.ErrorOrNil(); err != nil {
		return errors.New(err)
	}

	return nil
}

// Collect runs fn inside a span named name and records its duration under the same name.
func (tlm *Telemeter) Collect(ctx context.Context, name string, attrs map[string]any, fn func(childCtx context.Context) error) error {
	return tlm.Trace(ctx, name, attrs, func(ctx context.Context) error {
		return tlm.Time(ctx, name, attrs, fn)
	})
}
