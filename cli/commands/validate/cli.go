// Package validate implements `unitfilter validate`, which compiles filters and reports every
// construction error.
package validate

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/gruntwork-io/unitfilter/cli/commands/common"
	"github.com/gruntwork-io/unitfilter/cli/flags"
	"github.com/gruntwork-io/unitfilter/internal/errors"
	"github.com/gruntwork-io/unitfilter/options"
)

const CommandName = "validate"

func NewCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:      CommandName,
		Usage:     "Compile the filters against the scenario and report the ones that do not compile.",
		UsageText: "unitfilter --scenario FILE validate --filter FILE [--filter FILE...]",
		Flags:     []cli.Flag{flags.NewFilterFlag(true)},
		Before: func(_ *cli.Context) error {
			return opts.Validate()
		},
		Action: func(cCtx *cli.Context) error {
			return Run(cCtx.Context, opts, cCtx.StringSlice(flags.FilterFlagName))
		},
	}
}

// Run compiles every filter in paths, printing `path: ok` for the ones that compile.
func Run(ctx context.Context, opts *options.Options, paths []string) error {
	board, err := common.LoadBoard(ctx, opts)
	if err != nil {
		return err
	}

	errs := &errors.MultiError{}

	for _, path := range paths {
		if _, err := common.LoadFilter(ctx, opts, board, path); err != nil {
			errs = errs.Append(err)
			continue
		}

		if _, err := fmt.Fprintf(opts.Writer, "%s: ok\n", path); err != nil {
			return errors.New(err)
		}
	}

	return errs.ErrorOrNil()
}
