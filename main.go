package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v2"

	appcli "github.com/gruntwork-io/unitfilter/cli"
	"github.com/gruntwork-io/unitfilter/internal/errors"
	"github.com/gruntwork-io/unitfilter/options"
	"github.com/gruntwork-io/unitfilter/pkg/log"
)

// The main entrypoint for unitfilter
func main() {
	opts := options.NewOptions()

	defer errors.Recover(checkForErrorsAndExit(opts))

	app := appcli.NewApp(opts)
	err := app.RunContext(context.Background(), os.Args)

	checkForErrorsAndExit(opts)(err)
}

// If there is an error, display it in the console and exit with a non-zero exit code. Otherwise, exit 0.
func checkForErrorsAndExit(opts *options.Options) func(error) {
	return func(err error) {
		if err == nil {
			os.Exit(0)
		}

		logger := opts.Logger

		var exitCoder cli.ExitCoder
		if errors.As(err, &exitCoder) {
			if msg := exitCoder.Error(); msg != "" {
				logger.Info(msg)
			}

			os.Exit(exitCoder.ExitCode())
		}

		logError(logger, err)
		os.Exit(1)
	}
}

func logError(logger log.Logger, err error) {
	for _, e := range errors.UnwrapMultiErrors(err) {
		logger.Error(e.Error())
	}

	if errStack := errors.ErrorStack(err); errStack != "" {
		logger.Trace(errStack)
	}
}
