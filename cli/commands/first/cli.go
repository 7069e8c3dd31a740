// Package first implements `unitfilter first`, which prints the first unit matching a filter.
package first

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/gruntwork-io/unitfilter/cli/commands/common"
	"github.com/gruntwork-io/unitfilter/cli/flags"
	"github.com/gruntwork-io/unitfilter/internal/unit"
	"github.com/gruntwork-io/unitfilter/internal/unitfilter"
	"github.com/gruntwork-io/unitfilter/options"
)

const CommandName = "first"

// ExitCodeNoMatch is returned when no unit matches.
const ExitCodeNoMatch = 1

func NewCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:      CommandName,
		Usage:     "Print the first unit of the scenario that matches the filter, exit 1 if there is none.",
		UsageText: "unitfilter --scenario FILE first --filter FILE",
		Flags:     []cli.Flag{flags.NewFilterFlag(false), flags.NewFormatFlag(opts)},
		Before: func(_ *cli.Context) error {
			return opts.Validate()
		},
		Action: func(cCtx *cli.Context) error {
			return Run(cCtx.Context, opts, cCtx.String(flags.FilterFlagName))
		},
	}
}

// Run writes the first unit matching the filter at path.
func Run(ctx context.Context, opts *options.Options, path string) error {
	board, err := common.LoadBoard(ctx, opts)
	if err != nil {
		return err
	}

	filter, err := common.LoadFilter(ctx, opts, board, path)
	if err != nil {
		return err
	}

	var first *unit.Unit

	err = unitfilter.TraceFirstMatch(ctx, path, len(board.Units().OnMap()), func(_ context.Context) error {
		first = filter.FirstMatchOnMap()
		return nil
	})
	if err != nil {
		return err
	}

	if first == nil {
		return cli.Exit("no match", ExitCodeNoMatch)
	}

	return common.WriteResults(opts.Writer, opts.OutputFormat, common.NewResult(path, first))
}
