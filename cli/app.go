// Package cli configures the unitfilter command line application.
package cli

import (
	"github.com/gruntwork-io/go-commons/version"
	hashicorpversion "github.com/hashicorp/go-version"
	"github.com/urfave/cli/v2"

	"github.com/gruntwork-io/unitfilter/cli/commands"
	"github.com/gruntwork-io/unitfilter/cli/flags/global"
	"github.com/gruntwork-io/unitfilter/internal/errors"
	"github.com/gruntwork-io/unitfilter/internal/telemetry"
	"github.com/gruntwork-io/unitfilter/options"
)

// AppName is the name of the binary, also reported as the telemetry service name.
const AppName = "unitfilter"

func init() {
	cli.AppHelpTemplate = AppHelpTemplate
}

// NewApp creates the unitfilter CLI app, every flag and command bound to opts.
func NewApp(opts *options.Options) *cli.App {
	app := cli.NewApp()
	app.Name = AppName
	app.Usage = "Select the units of a scenario with standard unit filters."
	app.UsageText = "unitfilter [global options] <command> [command options]"
	app.Version = version.GetVersion()
	app.Writer = opts.Writer
	app.ErrWriter = opts.ErrWriter
	app.Flags = global.NewFlags(opts)
	app.Commands = commands.New(opts)
	app.Before = beforeAction(opts)
	app.After = afterAction(opts)
	// Errors are reported by the caller, which picks the exit code.
	app.ExitErrHandler = func(*cli.Context, error) {}

	return app
}

func beforeAction(opts *options.Options) cli.BeforeFunc {
	return func(cCtx *cli.Context) error {
		if err := opts.ConfigureLogger(); err != nil {
			return err
		}

		appVersion, err := hashicorpversion.NewVersion(cCtx.App.Version)
		if err != nil {
			// Development builds carry no version.
			if appVersion, err = hashicorpversion.NewVersion("0.0"); err != nil {
				return errors.WithStackTrace(err)
			}
		}

		telemeter, err := telemetry.NewTelemeter(cCtx.Context, AppName, appVersion.String(), opts.ErrWriter, opts.Telemetry)
		if err != nil {
			return err
		}

		cCtx.Context = telemetry.ContextWithTelemeter(cCtx.Context, telemeter)

		opts.Logger.Debugf("%s version %s", AppName, appVersion)

		return nil
	}
}

func afterAction(opts *options.Options) cli.AfterFunc {
	return func(cCtx *cli.Context) error {
		if err := telemetry.TelemeterFromContext(cCtx.Context).Shutdown(cCtx.Context); err != nil {
			opts.Logger.Warnf("Telemetry shutdown: %v", err)
		}

		return nil
	}
}
