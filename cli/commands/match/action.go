package match

import (
	"context"

	"github.com/gruntwork-io/unitfilter/cli/commands/common"
	"github.com/gruntwork-io/unitfilter/internal/unit"
	"github.com/gruntwork-io/unitfilter/internal/unitfilter"
	"github.com/gruntwork-io/unitfilter/options"
)

// Run loads the board, compiles the filter at path and writes every matching unit.
func Run(ctx context.Context, opts *options.Options, path string) error {
	board, err := common.LoadBoard(ctx, opts)
	if err != nil {
		return err
	}

	filter, err := common.LoadFilter(ctx, opts, board, path)
	if err != nil {
		return err
	}

	var units []*unit.Unit

	err = unitfilter.TraceAllMatches(ctx, path, len(board.Units().OnMap()), func(_ context.Context) error {
		units = filter.AllMatchesOnMap()
		return nil
	})
	if err != nil {
		return err
	}

	opts.Logger.Debugf("Filter %s matched %d units", path, len(units))

	return common.WriteResults(opts.Writer, opts.OutputFormat, common.NewResult(path, units...))
}
