package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/gruntwork-io/unitfilter/cli/commands/common"
	"github.com/gruntwork-io/unitfilter/internal/errors"
	"github.com/gruntwork-io/unitfilter/internal/unit"
	"github.com/gruntwork-io/unitfilter/internal/unitfilter"
	"github.com/gruntwork-io/unitfilter/options"
	"github.com/gruntwork-io/unitfilter/pkg/log"
)

// Run evaluates every filter in paths against its own board, at most opts.Parallelism at a time,
// and writes the results in the order of paths. A filter that fails to load or compile is
// reported in its result and in the returned error, the others still run.
func Run(ctx context.Context, opts *options.Options, paths []string) error {
	results := make([]common.Result, len(paths))
	failures := make([]error, len(paths))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(opts.Parallelism)

	for i, path := range paths {
		group.Go(func() error {
			jobLogger := opts.Logger.WithOptions(log.WithDefaultFields(log.Fields{log.FieldKeyFilter: path}))

			units, err := evaluate(ctx, opts, path)

			results[i] = common.NewResult(path, units...)

			if err != nil {
				if errors.IsContextCanceled(err) {
					return err
				}

				jobLogger.WithError(err).Error("Filter failed")

				results[i].Error = err.Error()
				failures[i] = err
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	if err := common.WriteResults(opts.Writer, opts.OutputFormat, results...); err != nil {
		return err
	}

	return (&errors.MultiError{}).Append(failures...).ErrorOrNil()
}

// evaluate loads a fresh board for path, so that no two goroutines share the variable store the
// filter binds this_unit in.
func evaluate(ctx context.Context, opts *options.Options, path string) ([]*unit.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.New(err)
	}

	board, err := common.LoadBoard(ctx, opts)
	if err != nil {
		return nil, err
	}

	filter, err := common.LoadFilter(ctx, opts, board, path)
	if err != nil {
		return nil, err
	}

	var units []*unit.Unit

	err = unitfilter.TraceAllMatches(ctx, path, len(board.Units().OnMap()), func(_ context.Context) error {
		units = filter.AllMatchesOnMap()
		return nil
	})

	return units, err
}
