package unitfilter

import (
	"context"

	"github.com/gruntwork-io/unitfilter/internal/telemetry"
)

// Telemetry operation names for filter compilation and evaluation.
const (
	TelemetryOpFilterCompile    = "unit_filter_compile"
	TelemetryOpFilterAllMatches = "unit_filter_all_matches"
	TelemetryOpFilterFirstMatch = "unit_filter_first_match"
	TelemetryOpFilterCheck      = "unit_filter_check"
)

// Telemetry attribute keys.
const (
	AttrFilterSource = "filter.source"
	AttrUnitCount    = "unit.count"
	AttrUnitID       = "unit.id"
)

// TraceFilterCompile wraps filter compilation with telemetry.
// The underlying Telemeter.Collect handles nil/unconfigured telemetry gracefully.
func TraceFilterCompile(ctx context.Context, source string, fn func(ctx context.Context) error) error {
	return telemetry.TelemeterFromContext(ctx).Collect(ctx, TelemetryOpFilterCompile, map[string]any{
		AttrFilterSource: source,
	}, fn)
}

// TraceAllMatches wraps an AllMatchesOnMap query with telemetry.
func TraceAllMatches(ctx context.Context, source string, unitCount int, fn func(ctx context.Context) error) error {
	return telemetry.TelemeterFromContext(ctx).Collect(ctx, TelemetryOpFilterAllMatches, map[string]any{
		AttrFilterSource: source,
		AttrUnitCount:    unitCount,
	}, fn)
}

// TraceFirstMatch wraps a FirstMatchOnMap query with telemetry.
func TraceFirstMatch(ctx context.Context, source string, unitCount int, fn func(ctx context.Context) error) error {
	return telemetry.TelemeterFromContext(ctx).Collect(ctx, TelemetryOpFilterFirstMatch, map[string]any{
		AttrFilterSource: source,
		AttrUnitCount:    unitCount,
	}, fn)
}

// TraceCheck wraps a single unit check with telemetry.
func TraceCheck(ctx context.Context, source, unitID string, fn func(ctx context.Context) error) error {
	return telemetry.TelemeterFromContext(ctx).Collect(ctx, TelemetryOpFilterCheck, map[string]any{
		AttrFilterSource: source,
		AttrUnitID:       unitID,
	}, fn)
}
