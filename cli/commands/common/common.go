// Package common holds the steps every unitfilter command shares: loading the board, compiling
// filters and writing results.
package common

import (
	"context"

	"github.com/gruntwork-io/unitfilter/internal/config"
	"github.com/gruntwork-io/unitfilter/internal/errors"
	"github.com/gruntwork-io/unitfilter/internal/unitfilter"
	"github.com/gruntwork-io/unitfilter/internal/variables"
	"github.com/gruntwork-io/unitfilter/internal/world"
	"github.com/gruntwork-io/unitfilter/options"
	"github.com/gruntwork-io/unitfilter/pkg/log"
)

// LoadBoard loads the scenario, then the variables of the sqlite database if one is set.
// Every call returns a new board.
func LoadBoard(ctx context.Context, opts *options.Options) (*world.Board, error) {
	scenario, err := world.LoadScenario(ctx, opts.Logger, opts.ScenarioPath)
	if err != nil {
		return nil, err
	}

	if opts.VarsDBPath == "" {
		return scenario.Board, nil
	}

	store, err := variables.OpenSQLite(ctx, opts.VarsDBPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if err := store.Load(ctx, scenario.Board.Variables()); err != nil {
		return nil, errors.WithPrefix(err, "load variables from %s", opts.VarsDBPath)
	}

	return scenario.Board, nil
}

// LoadFilter reads the filter document at path and compiles it against board.
func LoadFilter(ctx context.Context, opts *options.Options, board *world.Board, path string) (*unitfilter.Filter, error) {
	var filter *unitfilter.Filter

	err := unitfilter.TraceFilterCompile(ctx, path, func(_ context.Context) error {
		cfg, err := config.ReadFile(path)
		if err != nil {
			return err
		}

		filter, err = unitfilter.New(opts.Logger.WithField(log.FieldKeyFilter, path), cfg, board)

		return err
	})
	if err != nil {
		return nil, errors.WithPrefix(err, "filter %s", path)
	}

	return filter, nil
}
