// Package check implements `unitfilter check`, which tells whether one unit matches a filter.
package check

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/gruntwork-io/unitfilter/cli/commands/common"
	"github.com/gruntwork-io/unitfilter/cli/flags"
	"github.com/gruntwork-io/unitfilter/internal/errors"
	"github.com/gruntwork-io/unitfilter/internal/unitfilter"
	"github.com/gruntwork-io/unitfilter/options"
	"github.com/gruntwork-io/unitfilter/pkg/log"
)

const CommandName = "check"

// ExitCodeNoMatch is returned when the unit does not match.
const ExitCodeNoMatch = 1

func NewCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:      CommandName,
		Usage:     "Report whether a unit matches the filter at its own location, exit 1 if it does not.",
		UsageText: "unitfilter --scenario FILE check --filter FILE --unit ID",
		Flags:     []cli.Flag{flags.NewFilterFlag(false), flags.NewUnitFlag(opts)},
		Before: func(_ *cli.Context) error {
			return opts.Validate()
		},
		Action: func(cCtx *cli.Context) error {
			return Run(cCtx.Context, opts, cCtx.String(flags.FilterFlagName))
		},
	}
}

// Run checks the unit opts.UnitID against the filter at path.
func Run(ctx context.Context, opts *options.Options, path string) error {
	board, err := common.LoadBoard(ctx, opts)
	if err != nil {
		return err
	}

	u, ok := board.Unit(opts.UnitID)
	if !ok {
		return errors.Errorf("unit %q is not in scenario %s", opts.UnitID, opts.ScenarioPath)
	}

	filter, err := common.LoadFilter(ctx, opts, board, path)
	if err != nil {
		return err
	}

	matched := false

	err = unitfilter.TraceCheck(ctx, path, u.ID, func(_ context.Context) error {
		matched = filter.MatchesUnit(u)
		return nil
	})
	if err != nil {
		return err
	}

	opts.Logger.WithField(log.FieldKeyUnit, u.ID).Debugf("Checked against %s at %s", path, u.Location)

	if !matched {
		return cli.Exit(fmt.Sprintf("%s: no match", u.ID), ExitCodeNoMatch)
	}

	_, err = fmt.Fprintf(opts.Writer, "%s: match\n", u.ID)

	return errors.WithStackTrace(err)
}
