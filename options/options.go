// Package options holds the settings shared by every unitfilter command.
package options

import (
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"

	"github.com/gruntwork-io/unitfilter/internal/errors"
	"github.com/gruntwork-io/unitfilter/internal/telemetry"
	"github.com/gruntwork-io/unitfilter/pkg/log"
)

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	// OutputFormatText prints one unit id per line.
	OutputFormatText = "text"

	// OutputFormatJSON prints one JSON document per filter.
	OutputFormatJSON = "json"
)

// Options is filled from command line flags and UNITFILTER_* environment variables.
type Options struct {
	Logger    log.Logger
	Writer    io.Writer
	ErrWriter io.Writer
	Telemetry *telemetry.Options

	LogLevel  string
	LogFormat string

	// ScenarioPath is the scenario document every command loads its board from.
	ScenarioPath string

	// VarsDBPath is an optional sqlite database whose variables are loaded over the scenario's.
	VarsDBPath string

	OutputFormat string

	// UnitID selects the unit of the `check` command.
	UnitID string

	FilterPaths []string

	// Parallelism bounds the number of filters the `batch` command evaluates at once.
	Parallelism int
}

// NewOptions returns options with defaults, writing to stdout and stderr.
func NewOptions() *Options {
	return &Options{
		Logger:       log.Default(),
		Writer:       os.Stdout,
		ErrWriter:    os.Stderr,
		Telemetry:    &telemetry.Options{},
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		OutputFormat: OutputFormatText,
		Parallelism:  runtime.NumCPU(),
	}
}

// ConfigureLogger rebuilds Logger from LogLevel and LogFormat. Text output is coloured when
// ErrWriter is a terminal.
func (opts *Options) ConfigureLogger() error {
	level, err := log.ParseLevel(opts.LogLevel)
	if err != nil {
		return err
	}

	color := false
	if file, ok := opts.ErrWriter.(*os.File); ok {
		color = isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
	}

	formatter, err := log.NewFormatter(opts.LogFormat, color)
	if err != nil {
		return err
	}

	opts.Logger = log.New(log.WithOutput(opts.ErrWriter), log.WithLevel(level), log.WithFormatter(formatter))

	return nil
}

// Validate checks the settings every command relies on.
func (opts *Options) Validate() error {
	if opts.ScenarioPath == "" {
		return errors.New(MissingScenarioError{})
	}

	switch opts.OutputFormat {
	case OutputFormatText, OutputFormatJSON:
	default:
		return errors.New(InvalidOutputFormatError{Format: opts.OutputFormat})
	}

	if opts.Parallelism < 1 {
		return errors.Errorf("parallelism must be at least 1, got %d", opts.Parallelism)
	}

	return nil
}

// MissingScenarioError is returned when no scenario was given.
type MissingScenarioError struct{}

func (MissingScenarioError) Error() string {
	return "no scenario given, use --scenario or UNITFILTER_SCENARIO"
}

// InvalidOutputFormatError is returned for an unknown --format value.
type InvalidOutputFormatError struct {
	Format string
}

func (err InvalidOutputFormatError) Error() string {
	return "invalid output format " + err.Format + ", supported formats: " + OutputFormatText + ", " + OutputFormatJSON
}
