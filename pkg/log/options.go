package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Option configures a logger built by New, or a clone made by WithOptions.
type Option func(logger *logger)

// WithLevel drops entries below level.
func WithLevel(level Level) Option {
	return func(logger *logger) {
		logger.Logger.SetLevel(level.ToLogrusLevel())
	}
}

func WithOutput(output io.Writer) Option {
	return func(logger *logger) {
		logger.Logger.SetOutput(output)
	}
}

// WithFormatter replaces the key/value text layout, usually with the one NewFormatter picks for
// --log-format.
func WithFormatter(formatter logrus.Formatter) Option {
	return func(logger *logger) {
		logger.Logger.SetFormatter(formatter)
	}
}

// WithDefaultFields attaches fields to every entry the logger writes. Fields added later with
// WithField take precedence on a key clash.
func WithDefaultFields(fields Fields) Option {
	return func(logger *logger) {
		if len(fields) == 0 {
			return
		}

		logger.Entry = logger.Entry.WithFields(logrus.Fields(fields))
	}
}
