// Package log provides the leveled, structured logger used throughout unitfilter.
//
// Filters, scenario loaders and the CLI take a Logger as their first argument instead of using a
// package level logger, so tests can capture or silence output per call.
package log

var std = New()

// Default returns the standard logger. It is meant for main and for tests that do not care
// about output; library code receives its logger as an argument.
func Default() Logger {
	return std
}

// Discard returns a logger that drops every entry.
func Discard() Logger {
	return New(WithOutput(discard{}), WithLevel(ErrorLevel))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
