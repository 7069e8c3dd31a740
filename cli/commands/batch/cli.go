// Package batch implements `unitfilter batch`, which evaluates several filters in parallel.
package batch

import (
	"github.com/urfave/cli/v2"

	"github.com/gruntwork-io/unitfilter/cli/flags"
	"github.com/gruntwork-io/unitfilter/options"
)

const CommandName = "batch"

func NewCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:      CommandName,
		Usage:     "Print the matches of several filters, evaluating them in parallel.",
		UsageText: "unitfilter --scenario FILE batch --filter FILE --filter FILE... [--parallelism N]",
		Flags: []cli.Flag{
			flags.NewFilterFlag(true),
			flags.NewFormatFlag(opts),
			flags.NewParallelismFlag(opts),
		},
		Before: func(_ *cli.Context) error {
			return opts.Validate()
		},
		Action: func(cCtx *cli.Context) error {
			return Run(cCtx.Context, opts, cCtx.StringSlice(flags.FilterFlagName))
		},
	}
}
