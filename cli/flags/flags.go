// Package flags declares the flags shared by unitfilter commands.
package flags

import (
	"github.com/urfave/cli/v2"

	"github.com/gruntwork-io/unitfilter/options"
)

const (
	FilterFlagName      = "filter"
	FormatFlagName      = "format"
	UnitFlagName        = "unit"
	ParallelismFlagName = "parallelism"
)

var envPrefix = Prefix{EnvPrefix}

// NewFilterFlag returns the --filter flag. Commands that take several filters read it with
// cCtx.StringSlice.
func NewFilterFlag(multiple bool) cli.Flag {
	if multiple {
		return &cli.StringSliceFlag{
			Name:     FilterFlagName,
			Aliases:  []string{"f"},
			Usage:    "Filter document to evaluate, YAML or HCL, optionally .zst compressed. Repeat for several filters.",
			Required: true,
		}
	}

	return &cli.StringFlag{
		Name:     FilterFlagName,
		Aliases:  []string{"f"},
		Usage:    "Filter document to evaluate, YAML or HCL, optionally .zst compressed.",
		Required: true,
	}
}

// NewFormatFlag returns the --format flag.
func NewFormatFlag(opts *options.Options) cli.Flag {
	return &cli.StringFlag{
		Name:        FormatFlagName,
		EnvVars:     envPrefix.EnvVars(FormatFlagName),
		Usage:       "Output format: " + options.OutputFormatText + " or " + options.OutputFormatJSON + ".",
		Value:       opts.OutputFormat,
		Destination: &opts.OutputFormat,
	}
}

// NewUnitFlag returns the --unit flag.
func NewUnitFlag(opts *options.Options) cli.Flag {
	return &cli.StringFlag{
		Name:        UnitFlagName,
		Aliases:     []string{"u"},
		Usage:       "Id of the unit to check.",
		Required:    true,
		Destination: &opts.UnitID,
	}
}

// NewParallelismFlag returns the --parallelism flag.
func NewParallelismFlag(opts *options.Options) cli.Flag {
	return &cli.IntFlag{
		Name:        ParallelismFlagName,
		EnvVars:     envPrefix.EnvVars(ParallelismFlagName),
		Usage:       "Maximum number of filters evaluated at once.",
		Value:       opts.Parallelism,
		Destination: &opts.Parallelism,
	}
}
