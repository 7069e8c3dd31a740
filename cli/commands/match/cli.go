// Package match implements `unitfilter match`, which prints every unit matching a filter.
package match

import (
	"github.com/urfave/cli/v2"

	"github.com/gruntwork-io/unitfilter/cli/flags"
	"github.com/gruntwork-io/unitfilter/options"
)

const CommandName = "match"

func NewCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:      CommandName,
		Usage:     "Print every unit of the scenario that matches the filter.",
		UsageText: "unitfilter --scenario FILE match --filter FILE",
		Flags:     []cli.Flag{flags.NewFilterFlag(false), flags.NewFormatFlag(opts)},
		Before: func(_ *cli.Context) error {
			return opts.Validate()
		},
		Action: func(cCtx *cli.Context) error {
			return Run(cCtx.Context, opts, cCtx.String(flags.FilterFlagName))
		},
	}
}
