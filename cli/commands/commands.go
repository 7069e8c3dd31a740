// Package commands lists the unitfilter commands.
package commands

import (
	"github.com/urfave/cli/v2"

	"github.com/gruntwork-io/unitfilter/cli/commands/batch"
	"github.com/gruntwork-io/unitfilter/cli/commands/check"
	"github.com/gruntwork-io/unitfilter/cli/commands/first"
	"github.com/gruntwork-io/unitfilter/cli/commands/match"
	"github.com/gruntwork-io/unitfilter/cli/commands/validate"
	"github.com/gruntwork-io/unitfilter/options"
)

// New returns every command, bound to opts.
func New(opts *options.Options) []*cli.Command {
	return []*cli.Command{
		match.NewCommand(opts),
		first.NewCommand(opts),
		check.NewCommand(opts),
		validate.NewCommand(opts),
		batch.NewCommand(opts),
	}
}
